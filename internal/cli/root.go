// Package cli wires the workshopd command tree.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finlabs/agent-workshop/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	// initialized in PersistentPreRunE
	log *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workshopd",
		Short: "workshopd — AI agent workshop backend",
		Long:  "workshopd serves the agent workshop demos: chat endpoints that exercise LLM tool calling, PDF analysis, and a simulated VC portfolio.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env values fill in provider keys for local development;
			// a missing file is fine.
			godotenv.Load()

			level := logLevel
			if level == "" {
				level = "info"
			}
			log = logging.New(nil, level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default workshop.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
