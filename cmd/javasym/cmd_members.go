package main

import (
	"fmt"

	"github.com/dhamidi/javasym/format"
	"github.com/dhamidi/javasym/java"
	"github.com/spf13/cobra"
)

func newMembersCmd(a *app) *cobra.Command {
	var kinds []string

	cmd := &cobra.Command{
		Use:   "members <file> <entity>",
		Short: "List the members of an entity in declaration order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter []java.MemberKind
			for _, kind := range kinds {
				switch k := java.MemberKind(kind); k {
				case java.MemberField, java.MemberMethod, java.MemberConstructor:
					filter = append(filter, k)
				default:
					return fmt.Errorf("unknown member kind: %s (expected field, method or constructor)", kind)
				}
			}

			q, err := loadQuery(args[0])
			if err != nil {
				return err
			}
			members, err := q.MembersOf(args[1], filter...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, mem := range members {
				fmt.Fprintf(out, "%d:%d\t%s\t%s\n", mem.Pos.Line, mem.Pos.Column, mem.Kind, format.MemberLine(mem))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&kinds, "kind", "k", nil, "only list members of these kinds (field, method, constructor)")

	return cmd
}
