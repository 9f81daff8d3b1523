package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/km-arc/beans/framework/app"
)

func newListCmd(o *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every bean definition in discovery order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.application(cmd)
			if err != nil {
				return err
			}
			descs := a.Container.Descriptors()
			views := make([]app.BeanView, 0, len(descs))
			for _, d := range descs {
				views = append(views, app.NewBeanView(d))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSCOPE\tTYPE\tKIND")
			for _, v := range views {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Name, v.Scope, v.Type, kind(v))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func kind(v app.BeanView) string {
	switch {
	case v.Processor:
		return "processor"
	case v.Initializing:
		return "initializing"
	}
	return "bean"
}
