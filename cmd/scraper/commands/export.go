package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"linkedin-scraper/internal/export"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/orchestrator"
	"linkedin-scraper/internal/scrape"
	"linkedin-scraper/internal/utils"
)

func exportCmd() *cobra.Command {
	criteria := models.DefaultSearchCriteria()
	var format, outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run one search and write the results as PDF and/or XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "pdf", "xlsx", "all":
			default:
				return fmt.Errorf("unknown format %q (want pdf, xlsx or all)", format)
			}
			logger := log.Log

			ctx, cancel := utils.SignalContext(context.Background(), logger)
			defer cancel()

			fetcher := scrape.New(cfg, logger)
			defer fetcher.Close()

			ctrl := orchestrator.NewController(fetcher, semaphore.NewWeighted(1), cfg.PageSize, logger)
			ctrl.SetCriteria(criteria)

			start := time.Now()
			if err := <-ctrl.Submit(ctx); err != nil {
				return err
			}
			state := ctrl.State()
			log.WithFields(log.Fields{
				"profiles": state.Results.Len(),
				"took":     utils.FormatDuration(time.Since(start)),
			}).Info("search finished")

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			if format == "pdf" || format == "all" {
				now := time.Now()
				res, err := ctrl.ExportPDF(ctx, now)
				if err != nil {
					return err
				}
				if err := writeFile(filepath.Join(outDir, export.PDFFilename(now)), res.Bytes); err != nil {
					return err
				}
			}
			if format == "xlsx" || format == "all" {
				data, err := ctrl.ExportSpreadsheet(ctx)
				if err != nil {
					return err
				}
				if err := writeFile(filepath.Join(outDir, export.SpreadsheetFilename), data); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&criteria.Industry, "industry", "", "industry to search")
	cmd.Flags().StringVar(&criteria.Country, "country", "", "country to search")
	cmd.Flags().StringVar(&criteria.Pages, "pages", models.DefaultPages, "number of result pages to scrape")
	cmd.Flags().StringVarP(&format, "format", "f", "all", "output format: pdf, xlsx or all")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.WithField("file", path).Info("wrote export")
	return nil
}
