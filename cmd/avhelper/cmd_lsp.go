package main

import (
	"github.com/dhamidi/avhelper/autovalue"
	"github.com/dhamidi/avhelper/java/codebase"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := autovalue.DefaultConfig()
			cfg.ApplyEnv()
			server := codebase.NewLSPServer(buildVersion().GitVersion, cfg)
			return server.RunStdio()
		},
	}
}
