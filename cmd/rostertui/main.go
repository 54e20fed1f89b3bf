// Command rostertui is a terminal console for stepping through a carer's
// roster with the same selection rules as the web workspace.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DukeRupert/carecrm/internal"
	"github.com/DukeRupert/carecrm/internal/repository"
	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/DukeRupert/carecrm/internal/service"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	carerID := flag.String("carer", "", "carer ID whose roster to load (required)")
	dayFlag := flag.String("day", "", "roster day as YYYY-MM-DD (default today)")
	flag.Parse()

	if *carerID == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*carerID, *dayFlag); err != nil {
		log.Fatal(err)
	}
}

func run(carerID, dayFlag string) error {
	ctx := context.Background()

	day := time.Now()
	if dayFlag != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, dayFlag, time.Local)
		if err != nil {
			return fmt.Errorf("invalid -day %q: %w", dayFlag, err)
		}
		day = parsed
	}

	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The terminal belongs to the UI, so logs are discarded unless a log
	// file is given.
	logOut := io.Discard
	if path := os.Getenv("ROSTERTUI_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := internal.NewLogger(logOut, cfg.Env, cfg.LogLevel)

	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rosterService := service.NewRosterService(repository.New(db), logger)
	roster, err := rosterService.ForCarer(ctx, carerID, day)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	sel := selection.New()
	sel.OnMismatch(func(m selection.Mismatch) {
		logger.Warn("selection does not match roster",
			"op", m.Op,
			"customer_id", m.CustomerID,
			"roster_size", m.RosterSize,
		)
	})

	m := newModel(sel, roster)
	defer m.close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
