package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gopcb/pcbcore/internal/config"
)

// loadConfig reads the named settings file, falling back to
// config.DefaultSettings when path is empty or doesn't exist.
func loadConfig(path string) (config.Settings, error) {
	if path == "" {
		return config.DefaultSettings(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.DefaultSettings(), nil
	}
	return config.Load(path)
}

// confirmIfExists asks msg before letting a caller overwrite an
// existing file at path; it returns true immediately if path doesn't
// exist yet.
func confirmIfExists(path, msg string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	return askForConfirmation(msg), nil
}

// askForConfirmation prints msg and reads a y/n answer from stdin,
// defaulting to no on a bare ENTER.
func askForConfirmation(msg string) bool {
	fmt.Println(msg)
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadString('\n')
		if err != nil || len(line) == 0 {
			return false
		}
		switch line[0] {
		case 'y', 'Y':
			return true
		case 'n', 'N', '\n':
			return false
		}
	}
}
