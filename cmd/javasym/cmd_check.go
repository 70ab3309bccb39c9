package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dhamidi/javasym/java"
	"github.com/dhamidi/javasym/java/treesitter"
	"github.com/spf13/cobra"
)

var errOutlineMismatch = errors.New("entity outline differs from tree-sitter-java")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Compare the extracted entities with the tree-sitter-java outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read java file: %w", err)
			}

			model, err := java.ModelFromFile(args[0])
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			decls, err := treesitter.Outline(src)
			if err != nil {
				return fmt.Errorf("tree-sitter %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			diff := treesitter.Compare(model, decls)
			if diff.Empty() {
				fmt.Fprintf(out, "ok\t%s\t%d entities\n", args[0], model.Len())
				return nil
			}
			for _, name := range diff.OnlyModel {
				fmt.Fprintf(out, "only extracted:\t%s\n", name)
			}
			for _, name := range diff.OnlyTreeSitter {
				fmt.Fprintf(out, "only tree-sitter:\t%s\n", name)
			}
			return errOutlineMismatch
		},
	}
}
