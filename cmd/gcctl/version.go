package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskforge/triad/gc"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type versionInfo struct {
	Version        string `json:"version"`
	Commit         string `json:"commit"`
	Date           string `json:"date"`
	DefaultPause   int    `json:"defaultPause"`
	DefaultStepMul int    `json:"defaultStepMul"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information and the collector's default tunables",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := versionInfo{
			Version:        version,
			Commit:         commit,
			Date:           date,
			DefaultPause:   gc.DefaultPause,
			DefaultStepMul: gc.DefaultStepMul,
		}
		if jsonOut {
			return printJSON(info)
		}
		fmt.Printf("gcctl %s\n", info.Version)
		fmt.Printf("  commit: %s\n", info.Commit)
		fmt.Printf("  built: %s\n", info.Date)
		fmt.Printf("  gc defaults: pause=%d%% stepMul=%d%%\n", info.DefaultPause, info.DefaultStepMul)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
