package cli

import (
	"fmt"
	"time"

	"github.com/meu-mundo/meumundo/internal/app/progression"
	"github.com/meu-mundo/meumundo/internal/config"
	"github.com/meu-mundo/meumundo/internal/infra/sqlite"
)

// openGame loads config, opens storage and wires the progression service.
// Callers must Close the returned DB.
func openGame() (*sqlite.DB, *progression.Service, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, cfg, err
	}

	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("open storage: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Game.Timezone)
	if err != nil {
		loc = nil // falls back to the reference zone
	}
	game := progression.New(db, loc)
	game.SetCooldown(time.Duration(cfg.Game.CooldownHours) * time.Hour)
	return db, game, cfg, nil
}
