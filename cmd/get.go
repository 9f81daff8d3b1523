package cmd

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/km-arc/beans/framework/app"
)

func newGetCmd(o *options) *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Fetch a bean by name and print its type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.application(cmd)
			if err != nil {
				return err
			}
			bean, err := a.Container.GetBean(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dump {
				fmt.Fprint(out, app.Dump(bean))
				return nil
			}
			d, _ := a.Container.Descriptor(args[0])
			fmt.Fprintf(out, "%s\t%s\t%s\n", d.Name, d.Scope, reflect.TypeOf(bean))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the instance with go-spew")
	return cmd
}
