package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect and exercise the tool catalogue",
}

func init() {
	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsSchemaCmd)
	toolsCmd.AddCommand(toolsExecCmd)
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the advertised tools",
	RunE: func(_ *cobra.Command, _ []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		for _, name := range c.Registry().Names() {
			d, _ := c.Registry().Descriptor(name)
			fmt.Printf("  %-22s %s\n", name, d.Description)
		}
		return nil
	},
}

var toolsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the full tool advertisement as JSON",
	RunE: func(_ *cobra.Command, _ []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		out, err := c.Registry().AdvertisementJSON()
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var toolsExecArgs string

// toolsExecCmd dispatches one tool by hand, printing the same envelope
// the model would see. Useful when debugging workspace data.
var toolsExecCmd = &cobra.Command{
	Use:   "exec <tool>",
	Short: "Execute one tool and print its envelope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		fmt.Println(c.Dispatcher().Execute(cmd.Context(), args[0], toolsExecArgs))
		return nil
	},
}

func init() {
	toolsExecCmd.Flags().StringVarP(&toolsExecArgs, "args", "a", "{}", "Tool arguments as JSON")
}
