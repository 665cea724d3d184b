// Command pcbroute is the thin cobra entry point over the placer and
// router core: it has no board file format of its own (spec non-goals),
// so each subcommand demonstrates its package against a small
// deterministically-generated board rather than reading a design file.
package main

import "github.com/gopcb/pcbcore/cmd/pcbroute/cmd"

func main() {
	cmd.Execute()
}
