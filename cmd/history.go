package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/banterhq/banter/pkg/api"
	"github.com/banterhq/banter/pkg/chat"
	"github.com/banterhq/banter/pkg/config"
	"github.com/banterhq/banter/pkg/controllers"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the server's conversation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		client := api.NewClientWithTimeout(cfg.Server.URL, cfg.Server.Timeout)
		session := controllers.NewSubmission(client, chat.NewStore())

		if err := session.Hydrate(cmd.Context()); err != nil {
			return err
		}

		for _, msg := range session.Store().Messages() {
			fmt.Fprintf(os.Stdout, "[%s]\n%s\n\n", msg.Role, msg.Content)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
