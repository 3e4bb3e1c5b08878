package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/banterhq/banter/pkg/api"
	"github.com/banterhq/banter/pkg/config"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the server's conversation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		client := api.NewClientWithTimeout(cfg.Server.URL, cfg.Server.Timeout)

		if err := client.ClearHistory(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Conversation cleared.")
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
