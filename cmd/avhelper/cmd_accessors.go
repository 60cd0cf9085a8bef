package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dhamidi/avhelper/autovalue"
	"github.com/spf13/cobra"
)

func newAccessorsCmd() *cobra.Command {
	var opts targetOptions

	cmd := &cobra.Command{
		Use:   "accessors <file>",
		Short: "List the accessors a builder or factory would be generated from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config()
			target, err := opts.load(args[0], cfg)
			if err != nil {
				return err
			}

			props := autovalue.PropertyNames(target.Accessors, cfg)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ACCESSOR\tPROPERTY\tSETTER\tTYPE\tNULLABILITY\tDECLARED IN")
			for i, acc := range target.Accessors {
				nullability := acc.Nullability.String()
				if acc.Nullability == autovalue.Nullable {
					nullability = warningColor.Sprint(nullability)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					acc.Name, props[i], autovalue.SetterName(props[i], cfg),
					acc.Type.String(), nullability, acc.DeclaredIn)
			}
			return w.Flush()
		},
	}

	opts.addFlags(cmd)

	return cmd
}
