// Command wfc fills grids with Wave Function Collapse using YAML rule sets.
//
// Usage:
//
//	wfc presets
//	wfc run --preset texture --width 40 --height 20 --seed 7
//	wfc run --rules my_tiles.yaml --retries 10
//	wfc batch --preset lines --trials 200 --workers 8
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		logrus.WithError(err).Fatal("wfc failed")
	}
}
