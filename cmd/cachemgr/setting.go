package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var settingCmd = &cobra.Command{
	Use:   "setting <key>",
	Short: "print a setting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		v, err := a.settings.Get(args[0])
		if err != nil {
			return err
		}
		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingCmd)
}
