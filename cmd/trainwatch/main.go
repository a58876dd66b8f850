// TrainWatch - ML Training Log Watcher
//
// TrainWatch polls a growing training log, extracts numeric metrics with
// pluggable regex parsers, and periodically emails an HTML progress
// report with PNG plots of the accumulated series.
package main

import (
	"os"

	"trainwatch/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
