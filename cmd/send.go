package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/banterhq/banter/pkg/api"
	"github.com/banterhq/banter/pkg/chat"
	"github.com/banterhq/banter/pkg/config"
	"github.com/banterhq/banter/pkg/controllers"
)

var sendAttach []string

var sendCmd = &cobra.Command{
	Use:   "send [prompt]",
	Short: "Send a prompt and stream the reply to stdout",
	Long: `Send a single prompt without opening the interactive UI. The model's
reply is streamed to stdout as it arrives.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		client := api.NewClientWithTimeout(cfg.Server.URL, cfg.Server.Timeout)
		session := controllers.NewSubmission(client, chat.NewStore())

		return streamReply(cmd.Context(), os.Stdout, session, args[0], sendAttach)
	},
	SilenceUsage: true,
}

func init() {
	sendCmd.Flags().StringArrayVarP(&sendAttach, "attach", "a", nil, "attach a server file to the prompt (repeatable)")
	rootCmd.AddCommand(sendCmd)
}

// streamReply submits the prompt and writes reply content as it grows.
// Records with the same timestamp are retransmissions of a growing
// message, so only the unseen suffix is written.
func streamReply(ctx context.Context, out io.Writer, session *controllers.Submission, prompt string, files []string) error {
	updates, err := session.Submit(ctx, prompt, files)
	if err != nil {
		return err
	}

	var lastID string
	var printed int
	wrote := false
	for update := range updates {
		if update.Err != nil {
			if wrote {
				fmt.Fprintln(out)
			}
			return update.Err
		}
		last, ok := session.Store().Last()
		if !ok || !last.IsAssistant() {
			continue
		}
		if last.Timestamp != lastID {
			if wrote {
				fmt.Fprintln(out)
			}
			lastID = last.Timestamp
			printed = 0
		}
		if len(last.Content) > printed {
			fmt.Fprint(out, last.Content[printed:])
			printed = len(last.Content)
			wrote = true
		}
	}
	if wrote {
		fmt.Fprintln(out)
	}
	return nil
}
