package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/dhamidi/javasym/java/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd(a *app) *cobra.Command {
	var includeComments bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a .java file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read java file: %w", err)
			}

			opts := []parser.Option{parser.WithFile(filename)}
			if includeComments {
				opts = append(opts, parser.WithComments())
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()
			for tok, err := range parser.Tokenize(data, opts...) {
				if err != nil {
					w.Flush()
					return err
				}
				fmt.Fprintf(w, "%d:%d\t%s\t%s\n",
					tok.Span.Start.Line, tok.Span.Start.Column,
					tok.Kind.Category(), strconv.Quote(tok.Literal))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeComments, "comments", false, "include comment tokens")

	return cmd
}
