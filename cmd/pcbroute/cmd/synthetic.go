package cmd

import (
	"math/rand"
	"strconv"

	"github.com/gopcb/pcbcore/board"
	"github.com/gopcb/pcbcore/geom"
)

// syntheticBoard builds a small deterministic board with n components
// laid out on a coarse grid and netCount two-pin nets wired between
// random component pairs. There is no board file format in scope
// (spec non-goals), so every CLI subcommand demonstrates its package
// against a board built this way instead of one read from disk.
func syntheticBoard(width, height geom.Coord, n, netCount int, seed int64) *board.Board {
	rng := rand.New(rand.NewSource(seed))
	b := &board.Board{Width: width, Height: height, Styles: []board.RouteStyle{board.DefaultRouteStyle}}

	cols := 1
	for cols*cols < n {
		cols++
	}
	cellW, cellH := width/geom.Coord(cols+1), height/geom.Coord(cols+1)

	for i := 0; i < n; i++ {
		row, col := i/cols, i%cols
		x := cellW * geom.Coord(col+1)
		y := cellH * geom.Coord(row+1)
		c := &board.Component{
			Name:       componentName(i),
			Pos:        geom.Point{X: x, Y: y},
			Width:      cellW / 3,
			Height:     cellH / 3,
			AllSMD:     true,
			Selectable: true,
		}
		b.Components = append(b.Components, c)
	}

	for i := 0; i < netCount; i++ {
		if n < 2 {
			break
		}
		a := b.Components[rng.Intn(n)]
		other := b.Components[rng.Intn(n)]
		if other == a {
			other = b.Components[(rng.Intn(n-1)+1+indexOfComponent(b.Components, a))%n]
		}
		net := board.Net{
			Name: netName(i),
			Pins: []board.NetPin{
				{Component: a.Name, Position: a.Center()},
				{Component: other.Name, Position: other.Center()},
			},
			Style: board.DefaultRouteStyle.Name,
		}
		b.Nets = append(b.Nets, net)
		// Every NetPin also gets a physical board.Pin at the same
		// position/net so route.Prepare's data-preparation step (spec
		// §4.5.1) has real fixed obstacles to build RouteBoxes from,
		// rather than the router inventing terminal geometry itself.
		for _, np := range net.Pins {
			b.Pins = append(b.Pins, board.Pin{
				Center:     np.Position,
				CopperDiam: syntheticPinCopperDiam,
				DrillDiam:  syntheticPinCopperDiam / 2,
				Net:        net.Name,
				Shape:      board.Round,
			})
		}
	}
	return b
}

// syntheticPinCopperDiam is the copper diameter given to every
// synthetic board's pins; matches the thickness scale of
// board.DefaultRouteStyle so the generated obstacles bloat sensibly.
const syntheticPinCopperDiam = 1000

func indexOfComponent(components []*board.Component, c *board.Component) int {
	for i, other := range components {
		if other == c {
			return i
		}
	}
	return 0
}

func componentName(i int) string {
	return "U" + strconv.Itoa(i+1)
}

func netName(i int) string {
	return "NET" + strconv.Itoa(i+1)
}
