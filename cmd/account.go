package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/hamster-tapper-cli/internal/domain"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the account roster",
	}

	cmd.AddCommand(
		newAccountAddCmd(app),
		newAccountListCmd(app),
		newAccountRemoveCmd(app),
	)

	return cmd
}

func newAccountAddCmd(app *app) *cobra.Command {
	var (
		name           string
		proxy          string
		webViewCommand string
		webViewArgs    []string
		disabled       bool
	)

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add or update a roster entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account := domain.Account{
				ID:      domain.AccountID(args[0]),
				Name:    name,
				Proxy:   proxy,
				WebView: domain.WebViewSource{Command: webViewCommand, Args: webViewArgs},
				Enabled: !disabled,
			}
			if err := account.Validate(); err != nil {
				return fmt.Errorf("invalid account: %w", err)
			}

			if err := app.repo.Save(cmd.Context(), account); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", account.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name used in log lines")
	cmd.Flags().StringVar(&proxy, "proxy", "", "proxy URL for this account's traffic")
	cmd.Flags().StringVar(&webViewCommand, "web-view-command", "", "command printing the game web-view URL")
	cmd.Flags().StringArrayVar(&webViewArgs, "web-view-arg", nil, "argument passed to the web-view command (repeatable)")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "register the account but skip it on run")
	_ = cmd.MarkFlagRequired("web-view-command")

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.repo.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, account := range accounts {
				state := "enabled"
				if !account.Enabled {
					state = "disabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", account.ID, account.SessionName(), state)
			}

			return nil
		},
	}
}

func newAccountRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a roster entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.AccountID(args[0])
			if err := app.repo.Delete(cmd.Context(), id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
			return nil
		},
	}
}
