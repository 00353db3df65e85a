package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/finlabs/agent-workshop/internal/agent"
	"github.com/finlabs/agent-workshop/internal/config"
	"github.com/finlabs/agent-workshop/internal/gateway"
	"github.com/finlabs/agent-workshop/internal/llm"
	"github.com/finlabs/agent-workshop/internal/portfolio"
	"github.com/finlabs/agent-workshop/internal/tools"
)

const defaultConfigPath = "workshop.yaml"

func newServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the workshop backend server",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				path = defaultConfigPath
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			providers := llm.NewRegistryFromConfig(cfg.Providers, log)
			if names := providers.List(); len(names) > 0 {
				log.Info().Strs("providers", names).Msg("LLM providers available")
			} else {
				log.Warn().Msg("no LLM providers configured — chat requests will fail")
			}
			if cfg.Providers.BraveKey == "" {
				log.Warn().Msg("BRAVE_API_KEY not set — web-search returns an error result")
			}

			store := portfolio.NewStore()
			catalog := tools.NewWorkshopRegistry(store, cfg.Providers.BraveKey, log)
			log.Info().Int("tools", catalog.Len()).Msg("tool catalog ready")

			runner := agent.NewRunner(providers, catalog, log)

			srv := gateway.New(cfg, log,
				gateway.WithRunner(runner),
				gateway.WithPortfolio(store),
			)

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "override listen host")
	cmd.Flags().IntVar(&port, "port", 0, "override listen port")

	return cmd
}
