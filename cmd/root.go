package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/banterhq/banter/pkg/config"
	"github.com/banterhq/banter/pkg/logger"
	"github.com/banterhq/banter/pkg/tui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "banter",
	Short: "Terminal client for streaming chat servers",
	Long: `banter talks to a chat server that streams conversations as
newline-delimited JSON and renders them live in your terminal, with
markdown, syntax highlighting, and copyable code blocks.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := tui.StartApp(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ~/.banter/config.yaml)")

	rootCmd.PersistentFlags().StringP("server", "s", "", "chat server URL")
	viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.PersistentFlags().StringP("log-level", "l", "", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
}
