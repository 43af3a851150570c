package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgelabs/unitforge/internal/config"
	"github.com/forgelabs/unitforge/internal/conversion"
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Enumerate conversion facts and export them",
	Long: `Facts resolves the catalog and writes every derivable conversion
(a * b = c and a / b = c over registered units) to stdout or a file,
as TOML or JSON, optionally mirrored into a SQLite artifact for
generators that prefer SQL.`,
	RunE: runFacts,
}

func init() {
	factsCmd.Flags().String("format", "", "output format: toml or json (default from config)")
	factsCmd.Flags().StringP("out", "o", "", "write to file instead of stdout")
	factsCmd.Flags().String("db", "", "also write units and facts into a SQLite file")
	factsCmd.Flags().String("unit", "", "only facts whose first operand is this unit")
	rootCmd.AddCommand(factsCmd)
}

func runFacts(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	printer := newPrinter(cmd, cfg)

	em, err := openTelemetry(cfg)
	if err != nil {
		return err
	}
	defer em.Close()

	res, err := runPipeline(cfg.CatalogPath, em)
	if err != nil {
		return err
	}

	if !res.ok() {
		printer.ValidationErrors(res.Structural)
		printer.ResolveErrors(res.Report.Errors)
		printer.Failure(res.Catalog.Info.Name, res.problemCount())
		os.Exit(1)
	}

	facts := res.Facts
	if unit, _ := cmd.Flags().GetString("unit"); unit != "" {
		facts = conversion.GroupByOperand(facts)[unit]
	}

	doc := conversion.BuildDocument(res.Catalog.Info.Name, res.Registry, facts)

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.FactsFormat
	}
	switch format {
	case "toml":
		err = conversion.WriteTOML(out, doc)
	case "json":
		err = conversion.WriteJSON(out, doc)
	default:
		return fmt.Errorf("unknown format %q (want toml or json)", format)
	}
	if err != nil {
		return err
	}

	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		store, err := conversion.OpenStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.WriteSnapshot(context.Background(), res.Registry, facts); err != nil {
			return err
		}
	}

	if cfg.Verbose {
		printer.Summary(res.Catalog.Info.Name, res.Registry.Len(), len(facts))
	}
	return nil
}
