package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-di/framework/container"
)

var validateCmd = &cobra.Command{
	Use:   "validate <files...>",
	Short: "Check definition files for collisions, missing targets and cycles",
	Long: `Merge the given definition files and run the container's dry-run
validation over every declared identifier. Nothing is constructed.

Substitute targets that name Go types must be declared with --type so the
check knows they are constructible.

Examples:
  dicheck validate app.yaml
  dicheck validate --type SMTPMailer:Mailer app.yaml mail.json
  dicheck validate --autowire --type Logger app.yaml
  dicheck validate --watch app.yaml mail.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolP("watch", "w", false, "re-run the check whenever a file changes")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, files []string) error {
	p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), !settings.GetBool("no_color"))

	types, err := parseTypes(settings.GetStringSlice("types"))
	if err != nil {
		return err
	}
	if watch, _ := cmd.Flags().GetBool("watch"); !watch {
		return check(cmd.Context(), p, types, files)
	}

	_ = check(cmd.Context(), p, types, files)
	p.Print("%s", p.Dim(fmt.Sprintf("watching %d file(s), press Ctrl+C to stop", len(files))))
	return watchFiles(cmd.Context(), files, watchDebounce, func() {
		p.Print("")
		_ = check(cmd.Context(), p, types, files)
	})
}

// check merges files and validates the result, printing the outcome.
func check(ctx context.Context, p *printer, types *container.Types, files []string) error {
	defs, err := loadDefinitions(ctx, files)
	if err != nil {
		p.Error("%s", err)
		return errCheckFailed
	}

	opts := []container.FactoryOption{
		container.WithTypes(types),
		container.WithFactoryLogger(logger),
	}
	if settings.GetBool("autowire") {
		opts = append(opts, container.WithAutowiring())
	}
	if _, err := container.NewFactory(container.StaticProvider{Defs: defs}, opts...).Build(); err != nil {
		reportValidation(p, err)
		return errCheckFailed
	}

	p.Success("%d definitions in %d file(s) are valid", defs.Len(), len(files))
	return nil
}

func reportValidation(p *printer, err error) {
	var ce *container.ContainerError
	if errors.As(err, &ce) && len(ce.Chain) > 0 {
		p.Error("circular dependency")
		p.Print("    %s", strings.Join(ce.Chain, p.Dim(" -> ")))
		return
	}
	p.Error("%s", err)
}

// errCheckFailed is returned after the failure has been printed.
var errCheckFailed = errors.New("check failed")
