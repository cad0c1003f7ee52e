package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ht",
		Short:         "Hamster tapper (ht): an auto-tapper agent for the clicker game",
		Long:          "ht keeps clicker sessions earning on their own: it authorizes through the Telegram web view, taps in randomized rounds, applies the daily energy refill, and greedily buys the upgrades with the best payback.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newRunCmd(app),
	)

	return rootCmd
}
