// Command report prints the dashboard views as terminal tables.
//
// Usage:
//
//	report [country-a country-b]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/klauspost/compress/gzhttp"

	"github.com/JonMunkholm/popdash/internal/config"
	"github.com/JonMunkholm/popdash/internal/dataset"
	"github.com/JonMunkholm/popdash/internal/logging"
	"github.com/JonMunkholm/popdash/internal/report"
	"github.com/JonMunkholm/popdash/internal/views"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg, os.Args[1:]); err != nil {
		slog.Error("report failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, args []string) error {
	var a, b string
	switch len(args) {
	case 0:
	case 2:
		a, b = args[0], args[1]
	default:
		return fmt.Errorf("usage: report [country-a country-b]")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := dataset.NewLoader(dataset.LoaderConfig{
		URL:      cfg.Dataset.URL,
		Timeout:  cfg.Dataset.FetchTimeout,
		MaxBytes: cfg.Dataset.MaxBytes,
	}).WithClient(&http.Client{Transport: gzhttp.Transport(http.DefaultTransport)})
	snap, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	if err := report.Global(os.Stdout, views.GlobalOverview(snap)); err != nil {
		return err
	}

	sel, err := views.ResolveSelection(snap.Catalog(), a, b)
	if err != nil {
		return err
	}
	if sel.A != "" && sel.B != "" {
		v, err := views.CountryComparison(snap, sel)
		if err != nil {
			return err
		}
		if err := report.Comparison(os.Stdout, v); err != nil {
			return err
		}
	}

	return report.Footer(os.Stdout, snap)
}
