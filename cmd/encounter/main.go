// Package main provides the encounter CLI. It loads YAML roll tables, rolls
// on the named one, and prints the outcome.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/hexspell/roll/internal/config"
	"github.com/hexspell/roll/internal/dice"
	"github.com/hexspell/roll/internal/observability"
	"github.com/hexspell/roll/internal/table"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (optional)")
	tablesDir := flag.String("tables", "", "directory of roll table YAML files (defaults to config)")
	tableName := flag.String("table", "", "name of the table to roll on (required)")
	seed := flag.Int64("seed", 0, "deterministic random seed (0 uses crypto randomness)")
	flag.Parse()

	if *tableName == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	dir := *tablesDir
	if dir == "" {
		dir = cfg.Tables.Dir
	}

	tables, err := table.LoadTablesFromDir(dir)
	if err != nil {
		logger.Fatal("loading tables", zap.Error(err))
	}
	logger.Debug("tables loaded", zap.Int("count", len(tables)), zap.String("dir", dir))

	tb, ok := table.Find(tables, *tableName)
	if !ok {
		logger.Fatal("unknown table",
			zap.String("table", *tableName),
			zap.Int("loaded", len(tables)),
		)
	}

	out, err := tb.Roll(newSource(*seed))
	if err != nil {
		logger.Fatal("rolling on table", zap.Error(err))
	}

	if out.Matched {
		color.Green("%s (%d): %s", out.Table, out.Total, out.Result)
	} else {
		fmt.Fprintf(os.Stdout, "%s (%d): no result\n", out.Table, out.Total)
	}

	logger.Debug("encounter rolled",
		zap.String("roll_id", out.RollID),
		zap.Int("total", out.Total),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// newSource picks the randomness source: seeded for reproducible rolls,
// crypto otherwise.
func newSource(seed int64) dice.Source {
	if seed != 0 {
		return dice.NewSeededSource(seed)
	}
	return dice.NewCryptoSource()
}
