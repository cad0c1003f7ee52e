package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/hamster-tapper-cli/internal/adapters/gameapi"
	"github.com/bnema/hamster-tapper-cli/internal/adapters/render/console"
	"github.com/bnema/hamster-tapper-cli/internal/adapters/telegram"
	"github.com/bnema/hamster-tapper-cli/internal/application"
	"github.com/bnema/hamster-tapper-cli/internal/domain"
	"github.com/bnema/hamster-tapper-cli/internal/ports"
)

func newRunCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the tapper loop",
		Long:  "Runs the tap/boost/upgrade loop for one account, or sequentially for every enabled account when --account is omitted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if accountID != "" {
				account, err := app.repo.GetByID(ctx, domain.AccountID(accountID))
				if err != nil {
					return err
				}
				return runAccount(ctx, app, account, cmd.OutOrStdout())
			}

			accounts, err := app.repo.List(ctx)
			if err != nil {
				return err
			}

			ran := 0
			for _, account := range accounts {
				if !account.Enabled {
					continue
				}
				ran++
				if err := runAccount(ctx, app, account, cmd.OutOrStdout()); err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						return nil
					}
					// a dead session on one account must not stop the rest
					continue
				}
			}
			if ran == 0 {
				return errors.New("no enabled accounts; add one with \"ht account add\"")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "run a single account by id")

	return cmd
}

func runAccount(ctx context.Context, app *app, account domain.Account, out io.Writer) error {
	if err := account.Validate(); err != nil {
		return fmt.Errorf("account %s: %w", account.ID, err)
	}

	log := console.NewLogger(out, account.SessionName())

	httpClient, err := gameapi.NewHTTPClient(account.Proxy)
	if err != nil {
		return fmt.Errorf("account %s: %w", account.ID, err)
	}
	if account.Proxy != "" {
		if ip, err := gameapi.CheckIP(ctx, httpClient); err != nil {
			log.Warn("proxy check failed: %v", err)
		} else {
			log.Info("proxy ip: %s", ip)
		}
	}

	client := gameapi.NewClient(app.cfg.APIBaseURL, httpClient)
	clock := ports.SystemClock{}

	auth := application.NewAuthProvider(telegram.NewCommandSource(account.WebView), client, log, clock)
	planner := application.NewUpgradePlanner(application.PlannerConfig{
		MaxLevel:             app.cfg.MaxLevel,
		MaxReturnPeriodHours: app.cfg.UpgradeMaxReturnPeriodHours,
		MaxEarningTimeHours:  app.cfg.MaxEarningTimeHours,
	}, client, log, clock)
	engine := application.TapEngine{MinAvailableEnergy: app.cfg.MinAvailableEnergy}

	loop := application.NewSessionLoop(application.LoopConfig{
		RandomTapsMin:       app.cfg.RandomTapsCount.Min,
		RandomTapsMax:       app.cfg.RandomTapsCount.Max,
		AddTapsOnTurbo:      app.cfg.AddTapsOnTurbo,
		SleepBetweenTapsMin: app.cfg.SleepBetweenTap.Min,
		SleepBetweenTapsMax: app.cfg.SleepBetweenTap.Max,
		ApplyDailyEnergy:    app.cfg.ApplyDailyEnergy,
		AutoUpgrade:         app.cfg.AutoUpgrade,
		LatchReset:          app.cfg.LatchReset(),
	}, auth, client, engine, planner, clock, clock, log)

	return loop.Run(ctx)
}
