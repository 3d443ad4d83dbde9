package commands

import (
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	"linkedin-scraper/internal/config"
	"linkedin-scraper/internal/models"
)

var (
	configPath string
	verbose    bool
	endpoint   string

	cfg models.Config
)

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scraper",
		Short:         "LinkedIn profile search front end",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetHandler(cli.Default)

			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if endpoint != "" {
				cfg.ScrapeEndpoint = endpoint
			}
			if verbose {
				cfg.Verbose = true
			}
			if cfg.Verbose {
				log.SetLevel(log.DebugLevel)
			}
			log.WithField("endpoint", cfg.ScrapeEndpoint).Debug("configuration loaded")
			return config.Validate(cfg)
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose log output")
	root.PersistentFlags().StringVar(&endpoint, "endpoint", "", "scraping service URL (default http://localhost:3000/scrape)")

	root.AddCommand(serveCmd(), exportCmd())
	return root
}
