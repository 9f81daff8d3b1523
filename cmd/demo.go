package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/km-arc/beans/demo/component/aspect"
	"github.com/km-arc/beans/demo/component/service"
	"github.com/km-arc/beans/framework/container"
)

func newDemoCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Call userService.SayHi and the advised smartDog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.application(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			svc, err := container.Resolve[*service.UserService](a.Container, "userService")
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "userService.SayHi() = %q\n", svc.SayHi())

			dog, err := container.Resolve[aspect.SmartAnimal](a.Container, "smartDog")
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "smartDog.GetSum(10, 8) = %g\n", dog.GetSum(10, 8))
			fmt.Fprintf(out, "smartDog.GetSub(10, 8) = %g\n", dog.GetSub(10, 8))
			return nil
		},
	}
}
