package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/forgelabs/unitforge/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog for structural and dimensional problems",
	Long: `Validate runs the full diagnostic pass: structural checks (missing
fields, duplicate names, unknown operands), dimensional collision
detection, and fixpoint resolution. Every problem is reported at once
so the catalog can be fixed in a single edit. Exits nonzero if any
problem is found.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
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

	printer.Summary(res.Catalog.Info.Name, res.Registry.Len(), len(res.Facts))
	return nil
}
