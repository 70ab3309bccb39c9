package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/javasym/format"
	"github.com/dhamidi/javasym/java"
	"github.com/dhamidi/javasym/java/parser"
	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string
	var includeDocs bool
	var dumpCST bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Extract the symbol model of a .java file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dumpCST {
				return writeCST(cmd.OutOrStdout(), args[0])
			}
			if !cmd.Flags().Changed("format") {
				outputFormat = a.cfg.Output.Format
			}
			if !cmd.Flags().Changed("docs") {
				includeDocs = a.cfg.Output.Docs
			}

			encoder, err := format.New(outputFormat, cmd.OutOrStdout(), format.WithDocs(includeDocs))
			if err != nil {
				return err
			}

			model, err := java.ModelFromFile(args[0])
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if err := encoder.Encode(model); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format ("+strings.Join(format.Names(), ", ")+")")
	cmd.Flags().BoolVar(&includeDocs, "docs", true, "include javadoc comments")
	cmd.Flags().BoolVar(&dumpCST, "cst", false, "print the syntax tree with positions instead of the model")

	return cmd
}

func writeCST(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	node, err := parser.ParseCompilationUnit(f).Finish()
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	_, err = io.WriteString(w, node.StringWithPositions())
	return err
}
