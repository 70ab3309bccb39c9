package main

import (
	"os"

	"github.com/dhamidi/javasym/java/codebase"
	"github.com/spf13/cobra"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := os.Getwd()
			if err != nil {
				root = "."
			}
			server := codebase.NewLSPServer(codebase.New(root), version)
			return server.RunStdio()
		},
	}
}
