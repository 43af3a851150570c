package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/forgelabs/unitforge/internal/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-resolve the catalog whenever it changes",
	Long: `Watch monitors the catalog file and re-runs the full validation and
resolution pass on every change, giving catalog authors immediate
feedback. Stops on interrupt.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	printer := newPrinter(cmd, cfg)

	em, err := openTelemetry(cfg)
	if err != nil {
		return err
	}
	defer em.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save,
	// which drops a direct file watch.
	dir := filepath.Dir(cfg.CatalogPath)
	base := filepath.Base(cfg.CatalogPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	report := func() {
		res, err := runPipeline(cfg.CatalogPath, em)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		printer.ValidationErrors(res.Structural)
		printer.ResolveErrors(res.Report.Errors)
		if res.ok() {
			printer.Summary(res.Catalog.Info.Name, res.Registry.Len(), len(res.Facts))
		} else {
			printer.Failure(res.Catalog.Info.Name, res.problemCount())
		}
	}

	printer.Watching(cfg.CatalogPath)
	report()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	// Debounce bursts of events from editors that write in several steps.
	const debounce = 200 * time.Millisecond
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			report()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "watch error:", err)
		case <-sig:
			return nil
		}
	}
}
