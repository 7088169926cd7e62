// Package cmd implements the subcommands behind the main dispatcher.
package cmd

import (
	"flag"
	"fmt"
	"time"

	"github.com/Death4two/TuxTimings/pkg/collecting"
	"github.com/Death4two/TuxTimings/pkg/exporting"
	"github.com/Death4two/TuxTimings/pkg/utils"
)

// CmdContext bundles the parsed config with an initialized manager.
type CmdContext struct {
	Manager *collecting.Manager
	Config  *utils.Config
}

// InitCmd parses the shared flags and builds the polling manager.
func InitCmd(name string, args []string) *CmdContext {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cfg := utils.NewConfig()
	utils.GetFlags(fs, cfg)
	fs.Parse(args)

	return &CmdContext{
		Manager: collecting.NewManager(cfg),
		Config:  cfg,
	}
}

// DefaultOutputFile names the session file after the mode, timestamp
// and format when -output was not given.
func DefaultOutputFile(mode, format string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s%s", mode, timestamp, exporting.GetExtension(format))
}
