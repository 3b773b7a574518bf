// Package main validates observer catalog CSV files before they are
// uploaded or bundled.
package main

import (
	"flag"
	"log"
	"os"

	importercmd "github.com/observerset/atlasview/internal/cmd/importer"
	"github.com/observerset/atlasview/internal/platform/config"
)

func main() {
	log.SetPrefix("[IMPORT] ")
	cfg, err := importercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("%v", err)
	}

	if err := importercmd.Run(cfg, os.Stdout); err != nil {
		config.Exitf("%v", err)
	}
}
