package main

import (
	"os"

	"github.com/apex/log"

	"linkedin-scraper/cmd/scraper/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		log.WithError(err).Error("scraper failed")
		os.Exit(1)
	}
}
