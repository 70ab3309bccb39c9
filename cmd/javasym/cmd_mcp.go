package main

import (
	"github.com/dhamidi/javasym/java/codebase"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server on stdio with entity lookup tools",
		Long: `Start an MCP server on stdio. It offers the tools list_entities,
find_entity, members_of and is_subtype_of, each taking the path of a
.java file relative to --root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewMCPServer(codebase.New(root), version)
			return server.ServeStdio()
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory that tool paths are relative to")

	return cmd
}
