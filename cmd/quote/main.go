package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/noah-isme/toko-pricing/internal/checkout"
	"github.com/noah-isme/toko-pricing/internal/common"
	"github.com/noah-isme/toko-pricing/internal/config"
	"github.com/noah-isme/toko-pricing/internal/obs"
	"github.com/noah-isme/toko-pricing/internal/order"
)

// quote prices an order document and prints the breakdown as JSON.
// Exit code 0 = ok, 1 = order not ready or invalid argument, 2 = other error.
func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		file        = fs.String("file", "-", "order JSON document to price; - reads stdin")
		discount    = fs.Int("discount", 0, "discount percent override; PRICING_DEFAULT_DISCOUNT_PERCENT when unset")
		metricsFile = fs.String("metrics-file", "", "write quote metrics to this path in Prometheus textfile format")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "quote: load config: %v\n", err)
		return exitCode(err)
	}
	logger := obs.NewLoggerWithWriter(stderr, cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	shutdown, err := obs.InitTracer(ctx, obs.TracingConfig{
		ServiceName:   "toko-pricing",
		Endpoint:      cfg.OTelEndpoint,
		Exporter:      cfg.OTelExporter,
		SamplingRatio: cfg.OTelSamplingRatio,
		Environment:   cfg.AppEnv,
	})
	if err != nil {
		logger.Error().Err(err).Msg("initialise tracing")
		return 2
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown tracer")
		}
	}()

	in := stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			logger.Error().Err(err).Str("file", *file).Msg("open order document")
			return 2
		}
		defer f.Close()
		in = f
	}
	o, err := order.Decode(in)
	if err != nil {
		logger.Error().Err(err).Msg("decode order document")
		return exitCode(err)
	}

	registry := prometheus.NewRegistry()
	svc := &checkout.Service{
		Logger:                 logger,
		Metrics:                obs.NewPricingMetrics(cfg.MetricsNamespace, cfg.QuoteBuckets, registry),
		VATPercent:             cfg.VATPercent,
		DefaultDiscountPercent: cfg.DefaultDiscountPercent,
	}
	var override *int
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "discount" {
			override = discount
		}
	})
	out, err := svc.Quote(ctx, o, override)
	if *metricsFile != "" {
		if writeErr := prometheus.WriteToTextfile(*metricsFile, registry); writeErr != nil {
			logger.Error().Err(writeErr).Str("file", *metricsFile).Msg("write metrics")
			return 2
		}
	}
	if err != nil {
		return exitCode(err)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error().Err(err).Msg("write quote")
		return 2
	}
	return 0
}

func exitCode(err error) int {
	if common.IsAppError(err) || errors.Is(err, checkout.ErrOrderNotReady) {
		return 1
	}
	return 2
}
