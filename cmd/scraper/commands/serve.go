package commands

import (
	"context"

	"github.com/apex/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"linkedin-scraper/internal/orchestrator"
	"linkedin-scraper/internal/scrape"
	"linkedin-scraper/internal/utils"
	"linkedin-scraper/internal/web"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search page",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.ListenAddr = addr
			}
			logger := log.Log

			ctx, cancel := utils.SignalContext(context.Background(), logger)
			defer cancel()

			fetcher := scrape.New(cfg, logger)
			defer fetcher.Close()

			exports := semaphore.NewWeighted(cfg.MaxConcurrentExports)
			sessions := orchestrator.NewSessions(func() *orchestrator.Controller {
				return orchestrator.NewController(fetcher, exports, cfg.PageSize, logger)
			}, cfg.SessionTTL, logger)

			return web.NewServer(ctx, cfg, sessions, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default 127.0.0.1:8080)")
	return cmd
}
