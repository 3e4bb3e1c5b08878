package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/banterhq/banter/pkg/api"
	"github.com/banterhq/banter/pkg/config"
)

var filesCmd = &cobra.Command{
	Use:   "files [name]",
	Short: "List server files, or print one",
	Long: `Without arguments, list the files the server exposes for attachment.
With a name, print that file's content to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		client := api.NewClientWithTimeout(cfg.Server.URL, cfg.Server.Timeout)

		if len(args) == 1 {
			file, err := client.FileContent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, file.Content)
			return nil
		}

		names, err := client.Files(cmd.Context())
		if err != nil {
			return err
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(os.Stdout, name)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(filesCmd)
}
