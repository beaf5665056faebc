package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-di/framework/container"
)

var listCmd = &cobra.Command{
	Use:     "list <files...>",
	Aliases: []string{"ls"},
	Short:   "List merged definitions in match order",
	Long: `List every definition of the merged files in insertion order, which is
the order inheritance and pattern rules are tried once no exact identifier
matches. The catch-all is listed last since it only applies when nothing
else does.

Examples:
  dicheck list app.yaml
  dicheck list --tag listener app.yaml events.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("tag", "", "only show definitions carrying this tag")
}

func runList(cmd *cobra.Command, files []string) error {
	p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), !settings.GetBool("no_color"))
	tag, _ := cmd.Flags().GetString("tag")

	defs, err := loadDefinitions(cmd.Context(), files)
	if err != nil {
		p.Error("%s", err)
		return errCheckFailed
	}

	var rows, catchAll [][]string
	defs.Each(func(key string, def *container.Definition) bool {
		if tag != "" && !def.HasTag(tag) {
			return true
		}
		switch {
		case key == container.CatchAll:
			catchAll = append(catchAll, row(p, key, "catch-all", def))
		case container.IsPattern(key):
			rows = append(rows, row(p, key, "pattern", def))
		default:
			rows = append(rows, row(p, key, "id", def))
		}
		return true
	})

	rows = append(rows, catchAll...)
	p.Header("Definitions")
	if len(rows) == 0 {
		p.Print("%s", p.Dim("(none)"))
		return nil
	}
	return renderTable(cmd.OutOrStdout(),
		[]string{"KEY", "KIND", "SCOPE", "STRICT", "SUBSTITUTE", "PARAMS", "TAGS"},
		rows)
}

func row(p *printer, key, kind string, def *container.Definition) []string {
	strict := ""
	if def.Strict() {
		strict = "yes"
	}
	sub := def.Substitute().String()
	if sub == "" {
		sub = p.Dim("-")
	}
	return []string{
		p.Bold(key),
		kind,
		def.Scope().String(),
		strict,
		sub,
		strconv.Itoa(len(def.WithParams())),
		strings.Join(def.Tags(), ", "),
	}
}
