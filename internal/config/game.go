package config

import (
	"fmt"
	"time"
)

const (
	DefaultSize      = 10
	DefaultMineCount = 10
)

type Game struct {
	DefaultSize      int
	DefaultMineCount int
	MaxSize          int
	IdleTTL          time.Duration
	SweepInterval    time.Duration
}

func NewGame() (*Game, error) {
	size, err := intEnv("GAME_SIZE", DefaultSize)
	if err != nil {
		return nil, err
	}
	mineCount, err := intEnv("GAME_MINES", DefaultMineCount)
	if err != nil {
		return nil, err
	}
	maxSize, err := intEnv("GAME_MAX_SIZE", 64)
	if err != nil {
		return nil, err
	}
	idleTTL, err := durationEnv("GAME_IDLE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	sweepInterval, err := durationEnv("GAME_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	if size < 1 || size > maxSize {
		return nil, fmt.Errorf("GAME_SIZE must be in [1, %d], got %d", maxSize, size)
	}
	if mineCount < 0 || mineCount >= size*size {
		return nil, fmt.Errorf("GAME_MINES must be in [0, %d), got %d", size*size, mineCount)
	}
	if sweepInterval <= 0 {
		return nil, fmt.Errorf("GAME_SWEEP_INTERVAL must be positive")
	}

	game := &Game{
		DefaultSize:      size,
		DefaultMineCount: mineCount,
		MaxSize:          maxSize,
		IdleTTL:          idleTTL,
		SweepInterval:    sweepInterval,
	}

	return game, nil
}
