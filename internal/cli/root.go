package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haguru/signup/config"
	"github.com/haguru/signup/internal/app"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRootCommand builds the signup command. Without a subcommand it serves
// the sign-up page.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "signup",
		Short: "Serve the account sign-up page",
		Long: `Serves the sign-up form over HTTP. Each browser session gets its own
form; submissions are forwarded to the users API configured in the config file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.NewApp(configPath)
			if err != nil {
				return err
			}
			return a.Run()
		},
	}
	rootCmd.SetVersionTemplate("signup version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.CONFIG_PATH, "path to the YAML config file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the config file and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config %s is valid: %s on %s:%s, users API at %s\n",
				configPath, cfg.ServiceName, cfg.Host, cfg.Port, cfg.API.BaseURL)
			return nil
		},
	})

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
