package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSubtypeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "subtype <file> <entity> <candidate>",
		Short: "Check whether an entity extends or implements a candidate",
		Long: `Check whether an entity extends or implements a candidate, directly or
through a chain of declarations in the same file.

Prints true, false, or unresolved when the chain leaves the file before
the candidate is reached.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQuery(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), q.IsSubtypeOf(args[1], args[2]))
			return nil
		},
	}
}
