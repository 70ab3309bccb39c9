package main

import (
	"fmt"

	"github.com/dhamidi/javasym/format"
	"github.com/dhamidi/javasym/java"
	"github.com/spf13/cobra"
)

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <file> <entity>",
		Short: "Show one class, interface or enum of a .java file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQuery(args[0])
			if err != nil {
				return err
			}

			e, ok := q.FindEntity(args[1])
			if !ok {
				return fmt.Errorf("%w: %s", java.ErrUnknownEntity, args[1])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\t%d:%d\n", format.EntityHeader(e), e.Pos.Line, e.Pos.Column)
			if a.cfg.Output.Docs {
				if summary := format.DocSummary(e.Doc); summary != "" {
					fmt.Fprintf(out, "  // %s\n", summary)
				}
			}
			for _, constant := range e.EnumConstants {
				fmt.Fprintf(out, "  %s\n", constant)
			}
			for _, mem := range e.Members {
				fmt.Fprintf(out, "  %s\n", format.MemberLine(mem))
			}
			if subtypes := q.Subtypes(e.Name); len(subtypes) > 0 {
				fmt.Fprintf(out, "known subtypes: %v\n", subtypes)
			}
			return nil
		},
	}
}
