package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"eventbot/internal/config"
	"eventbot/internal/repository"

	"github.com/rs/zerolog/log"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "list the events that would be deleted without deleting them")
	days := flag.Int("days", 0, "only delete events that started more than this many days ago")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	repo, err := repository.NewEventRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	retain := *days
	if retain == 0 {
		retain = cfg.Cleanup.RetainDays
	}
	cutoff := time.Now().AddDate(0, 0, -retain)

	events, err := repo.PastEvents(ctx, cutoff)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list past events")
	}

	if len(events) == 0 {
		fmt.Printf("No events started before %s, nothing to delete.\n", cutoff.Format("2006-01-02"))
		return
	}

	fmt.Printf("Events started before %s:\n", cutoff.Format("2006-01-02"))
	for _, e := range events {
		fmt.Printf("  - %s (%s)\n", e.Title, e.StartsAt.Format("2006-01-02 15:04"))
	}

	if *dryRun {
		fmt.Printf("Dry run: %d event(s) would be deleted.\n", len(events))
		return
	}

	deleted, err := repo.DeletePastEvents(ctx, cutoff)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to delete past events")
	}
	fmt.Printf("Deleted %d event(s).\n", deleted)
}
