// Package main provides the deal CLI. It shuffles a standard 52 card deck
// and deals a hand.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/hexspell/roll/internal/cards"
	"github.com/hexspell/roll/internal/config"
	"github.com/hexspell/roll/internal/dice"
	"github.com/hexspell/roll/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (optional)")
	hand := flag.Int("hand", 5, "number of cards to deal")
	seed := flag.Int64("seed", 0, "deterministic random seed (0 uses crypto randomness)")
	flag.Parse()

	if *hand < 1 {
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

	deck := cards.NewDeck()
	deck.Shuffle(newSource(*seed))
	dealt := deck.Draw(*hand)

	for i, c := range dealt {
		color.Green("%d: %s", i+1, c)
	}

	logger.Debug("hand dealt",
		zap.Int("requested", *hand),
		zap.Int("dealt", len(dealt)),
		zap.Int("remaining", deck.Len()),
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
