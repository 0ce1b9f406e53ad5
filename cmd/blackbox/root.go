package main

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "blackbox",
	Short: "Blackbox - Local LLM automation hub",
	Long: `Blackbox is a locally hosted automation hub for LLM agents. It exposes
sandboxed tools (files, shell, web, documents) and a cron scheduler that
generates and emails recurring reports.`,
	Version: Version,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
