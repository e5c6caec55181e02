package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-core/internal/mines"
)

type Game struct {
	MaxRows    int
	MaxCols    int
	Sampler    string
	Blank      rune
	SessionTTL time.Duration
}

func DefaultGame() *Game {
	return &Game{
		MaxRows:    64,
		MaxCols:    64,
		Sampler:    mines.SamplerShuffle,
		Blank:      mines.DefaultBlank,
		SessionTTL: time.Hour,
	}
}

func lookupInt(key string, dst *int) error {
	s, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	if v <= 0 {
		return fmt.Errorf("%s must be positive, got %d", key, v)
	}
	*dst = v
	return nil
}

func NewGame() (*Game, error) {
	g := DefaultGame()

	if err := lookupInt("GAME_MAX_ROWS", &g.MaxRows); err != nil {
		return nil, err
	}
	if err := lookupInt("GAME_MAX_COLS", &g.MaxCols); err != nil {
		return nil, err
	}

	if sampler, ok := os.LookupEnv("GAME_SAMPLER"); ok {
		if _, err := mines.ParseSampler(sampler, nil); err != nil {
			return nil, err
		}
		g.Sampler = sampler
	}

	if blank, ok := os.LookupEnv("GAME_BLANK_GLYPH"); ok {
		if utf8.RuneCountInString(blank) != 1 {
			return nil, fmt.Errorf("GAME_BLANK_GLYPH must be a single character, got %q", blank)
		}
		g.Blank, _ = utf8.DecodeRuneInString(blank)
	}

	if ttl, ok := os.LookupEnv("GAME_SESSION_TTL"); ok {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("unable to parse GAME_SESSION_TTL: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("GAME_SESSION_TTL must be positive, got %s", d)
		}
		g.SessionTTL = d
	}

	return g, nil
}

func (g Game) Fields() logrus.Fields {
	return logrus.Fields{
		"max_rows":    g.MaxRows,
		"max_cols":    g.MaxCols,
		"sampler":     g.Sampler,
		"blank":       string(g.Blank),
		"session_ttl": g.SessionTTL.String(),
	}
}
