package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	tomlrepo "github.com/bnema/hamster-tapper-cli/internal/adapters/repo/toml"
	"github.com/bnema/hamster-tapper-cli/internal/config"
	"github.com/bnema/hamster-tapper-cli/internal/ports"
)

type app struct {
	repo ports.AccountRepository
	cfg  config.Config
}

func wireApp() (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire account repository: %w", err)
	}

	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	return &app{repo: repo, cfg: cfg}, nil
}
