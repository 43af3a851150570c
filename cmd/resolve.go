package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgelabs/unitforge/internal/config"
	"github.com/forgelabs/unitforge/internal/telemetry"
	"github.com/forgelabs/unitforge/internal/ui"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the catalog and print the registered units",
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, _ []string) error {
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

	printer.ValidationErrors(res.Structural)
	printer.ResolveErrors(res.Report.Errors)

	if !res.ok() {
		printer.Failure(res.Catalog.Info.Name, res.problemCount())
		os.Exit(1)
	}

	printer.RegistryTable(res.Registry)
	printer.Summary(res.Catalog.Info.Name, res.Registry.Len(), len(res.Facts))
	return nil
}

// newPrinter builds the stderr printer honoring --no-color and config.
func newPrinter(cmd *cobra.Command, cfg config.Config) *ui.Printer {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return ui.New(cfg.Color && !noColor)
}

// openTelemetry opens the configured JSONL emitter, or returns a nil
// (no-op) emitter when telemetry is not configured.
func openTelemetry(cfg config.Config) (*telemetry.Emitter, error) {
	if cfg.TelemetryPath == "" {
		return nil, nil
	}
	em, err := telemetry.NewEmitter(cfg.TelemetryPath)
	if err != nil {
		return nil, fmt.Errorf("opening telemetry: %w", err)
	}
	return em, nil
}
