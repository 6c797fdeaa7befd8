package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newComponentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List the formats and components loaded from the catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			reg := a.resolver.Registry()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Formats:\n")
			for _, id := range reg.Formats() {
				d, err := reg.Format(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-16s %s (%s)\n", id, strings.Join(d.Extensions, ", "), d.Kind())
			}

			fmt.Fprintf(out, "Components:\n")
			for _, name := range reg.Names() {
				d, err := reg.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-16s %s\n", name, d.Description)
				groups, err := reg.Groups(name)
				if err != nil {
					return err
				}
				for _, g := range groups {
					fmt.Fprintf(out, "    accepts %s\n", g)
				}
				decls, err := reg.Parameters(name)
				if err != nil {
					return err
				}
				for _, p := range decls {
					fmt.Fprintf(out, "    --param %s (%s)\n", p.Name, p.Kind)
				}
			}
			return nil
		},
	}
}
