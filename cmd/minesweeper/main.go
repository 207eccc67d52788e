package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/session"
)

var log = logrus.New()

type options struct {
	size      int
	mineCount int
	seed      uint64
	name      string
	records   string
	logFile   string
	list      bool
}

func parseFlags(args []string, defaults *config.Game) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("minesweeper", flag.ContinueOnError)
	fs.IntVar(&opts.size, "size", defaults.DefaultSize, "grid size")
	fs.IntVar(&opts.mineCount, "mines", defaults.DefaultMineCount, "number of mines")
	fs.Uint64Var(&opts.seed, "seed", 0, "mine layout seed (0 picks one at random)")
	fs.StringVar(&opts.name, "name", os.Getenv("USER"), "name stored with finished games")
	fs.StringVar(&opts.records, "records", "minesweeper.db", "sqlite records file (empty disables records)")
	fs.StringVar(&opts.logFile, "log", "", "log file, rotated when it grows (empty disables logging)")
	fs.BoolVar(&opts.list, "list", false, "list recorded games and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// setupLogging keeps stdout free for the board: entries only reach the
// rotating log file, if any.
func setupLogging(path string) error {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetOutput(io.Discard)

	if path == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   path,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	log.AddHook(hook)
	return nil
}

func openRecords(path string) (*repository.SQLiteRecords, func() error, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, err
	}
	records, err := repository.NewSQLiteRecords(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("unable to prepare records file: %w", err)
	}
	return records, db.Close, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = new(maphash.Hash).Sum64()
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func run(args []string) error {
	defaults, err := config.NewGame()
	if err != nil {
		return err
	}
	opts, err := parseFlags(args, defaults)
	if err != nil {
		return err
	}
	if err := setupLogging(opts.logFile); err != nil {
		return err
	}

	var records *repository.SQLiteRecords
	if opts.records != "" {
		var closeDB func() error
		records, closeDB, err = openRecords(opts.records)
		if err != nil {
			return err
		}
		defer closeDB()
	}

	ctx := context.Background()

	if opts.list {
		if records == nil {
			return fmt.Errorf("-list needs a -records file")
		}
		return listRecords(ctx, os.Stdout, records, repository.RecordFilter{})
	}

	game, err := session.New(opts.size, opts.mineCount, newRand(opts.seed))
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"size":      opts.size,
		"mineCount": opts.mineCount,
	}).Info("new game")

	status, err := newTerminal(os.Stdin, os.Stdout, log).play(game)
	if err != nil {
		return err
	}

	if records != nil {
		if err := recordGame(ctx, records, game, opts.name); err != nil {
			log.WithError(err).Error("unable to record game")
		}
	}
	log.WithField("status", status.String()).Info("game over")
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
