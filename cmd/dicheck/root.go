package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	settings = viper.New()
	logger   = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dicheck",
	Short: "Validate and inspect container definition files",
	Long: `dicheck loads container definition files (.json, .yaml, .yml), merges them
the way the application does and reports collisions, unresolvable
substitutes and dependency cycles without constructing anything.

Example usage:
  dicheck validate config/app.yaml config/mail.json
  dicheck validate --type SMTPMailer:Mailer config/mail.yaml
  dicheck list config/app.yaml`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log resolution steps")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringSlice("type", nil, "declare a constructible type as Name[:Parent,...] (repeatable)")
	rootCmd.PersistentFlags().Bool("autowire", false, "serve registered types without definitions")

	// Bind flags to viper; DICHECK_* environment variables override defaults
	_ = settings.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = settings.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	_ = settings.BindPFlag("types", rootCmd.PersistentFlags().Lookup("type"))
	_ = settings.BindPFlag("autowire", rootCmd.PersistentFlags().Lookup("autowire"))
	settings.SetEnvPrefix("DICHECK")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
}

func initLogger() error {
	if !settings.GetBool("verbose") {
		logger = zap.NewNop()
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	logger = l
	return nil
}
