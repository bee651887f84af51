package main

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/sirjenkins/lwotai/internal/cards"
	"github.com/sirjenkins/lwotai/internal/engine"
	"github.com/sirjenkins/lwotai/internal/scenario"
	"github.com/sirjenkins/lwotai/internal/store"
	"github.com/sirjenkins/lwotai/internal/ui"
	"github.com/sirjenkins/lwotai/internal/util"
	"go.uber.org/zap"
)

var (
	version      = "0.1.0"
	seedAlphabet = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)
)

func main() {
	cfg, err := util.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	flag.IntVar(&cfg.Scenario, "scenario", cfg.Scenario, "Scenario 1-4")
	flag.IntVar(&cfg.Ideology, "ideology", cfg.Ideology, "Jihadist ideology 1-5")
	flag.StringVar(&cfg.Seed, "seed", cfg.Seed, "Dice seed string (optional; random if omitted)")
	flag.StringVar(&cfg.DSN, "dsn", cfg.DSN, "PostgreSQL DSN for game history (optional)")
	flag.BoolVar(&cfg.Plain, "plain", cfg.Plain, "Line-mode shell instead of the full-screen one")
	flag.StringVar(&cfg.Theme, "theme", cfg.Theme, "Palette: catppuccin|dracula|gruvbox|solarized_dark")
	resume := flag.Bool("resume", false, "Resume the suspended game")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "lwotai [--scenario N] [--ideology N] [--seed S] [--dsn DSN] [--plain] [--resume] | migrate up|down | version\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println("lwotai", version)
			return
		case "migrate":
			if len(args) < 2 {
				log.Fatal("migrate requires 'up' or 'down'")
			}
			migrateCmd(cfg.DSN, args[1])
			return
		default:
			log.Fatalf("unknown command %q", args[0])
		}
	}

	logger, err := util.NewLogger(cfg, !cfg.Plain)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	snaps, err := store.OpenSnapshots(cfg.SnapshotPath())
	if err != nil {
		log.Fatalf("failed to open snapshots: %v", err)
	}
	defer snaps.Close()

	seedText := strings.TrimSpace(cfg.Seed)
	var w *engine.World
	if *resume {
		w, err = snaps.Resume(ctx, engine.WithLogger(logger))
		if err != nil {
			log.Fatalf("no game to resume: %v", err)
		}
	} else {
		if seedText == "" {
			if seedText, err = generateSeed(); err != nil {
				log.Fatalf("failed to generate seed: %v", err)
			}
			fmt.Printf("New game seed: %s\n", seedText)
		}
		seed, err := engine.NewRunSeed(seedText)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		w, err = scenario.New(cfg.Scenario, engine.Ideology(cfg.Ideology), engine.WithRoller(seed.Stream("dice")), engine.WithLogger(logger))
		if err != nil {
			log.Fatalf("scenario: %v", err)
		}
		if err := snaps.Reset(); err != nil {
			log.Fatalf("reset snapshots: %v", err)
		}
	}

	deck, err := cards.New()
	if err != nil {
		log.Fatalf("cards: %v", err)
	}

	opts := []ui.ShellOption{
		ui.WithSnapshots(snaps),
		ui.WithStrict(cfg.StrictInvariants),
		ui.WithShellLogger(logger),
	}
	if cfg.DSN != "" {
		db, err := openHistory(ctx, cfg.DSN)
		if err != nil {
			logger.Warn("game history disabled", zap.Error(err))
		} else {
			defer db.Close()
			opts = append(opts, ui.WithJournal(store.NewJournal(db)))
		}
	}

	sh := ui.NewShell(w, deck, opts...)
	if err := sh.Start(ctx, seedText); err != nil {
		log.Fatalf("start: %v", err)
	}
	logger.Info("game started", zap.String("game", w.ID.String()), zap.Int("scenario", w.Scenario), zap.Bool("resumed", *resume))
	if err := ui.Run(ctx, sh, cfg); err != nil {
		log.Fatal(err)
	}
}

// openHistory applies migrations and connects to the history database.
func openHistory(ctx context.Context, dsn string) (*store.DB, error) {
	mig, err := store.NewMigrator(dsn)
	if err != nil {
		return nil, err
	}
	migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := mig.Up(migCtx); err != nil && err != store.ErrNoChange {
		return nil, err
	}
	return store.Open(ctx, dsn)
}

func migrateCmd(dsn, action string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	migrator, err := store.NewMigrator(dsn)
	if err != nil {
		log.Fatal(err)
	}
	switch action {
	case "up":
		if err := migrator.Up(ctx); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := migrator.Down(ctx); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations rolled back")
	default:
		log.Fatal("unknown migrate action; use up|down")
	}
}

func generateSeed() (string, error) {
	buf := make([]byte, 15) // 24 characters base32
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToLower(seedAlphabet.EncodeToString(buf)), nil
}
