package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/mazrean/json2jsonl/internal"
	"github.com/mazrean/json2jsonl/internal/closer"
	"github.com/mazrean/json2jsonl/internal/config"
	mylog "github.com/mazrean/json2jsonl/internal/pkg/log"
	"github.com/mazrean/json2jsonl/internal/source"
	"github.com/mazrean/json2jsonl/log"
	"github.com/mazrean/json2jsonl/record"
)

var (
	version  = "dev"
	revision = "none"
)

const (
	exitFailure       = 1
	exitInvalidConfig = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	// Initialize default logger with info level
	var logger log.Logger = log.DefaultLogger

	// Load configuration
	cfg, err := config.Load(config.Version{Version: version, Revision: revision}, os.Args[1:])
	if err != nil {
		logger.Errorf("invalid configuration: %v", err)
		return exitInvalidConfig
	}

	// Set log level
	level, ok := mylog.ParseLevel(cfg.LogLevel)
	if !ok {
		logger.Warnf("invalid log level: %s. ignore and use default info level instead", cfg.LogLevel)
	}
	logger = mylog.NewLogger(level)

	dataset, err := record.ParseDataset(cfg.Dataset)
	if err != nil {
		logger.Errorf("invalid configuration: %v", err)
		return exitInvalidConfig
	}

	logger.Debugf("input %q, source %s, dataset %s", cfg.Infile, cfg.Source, dataset)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.Dev.StartProfiling(ctx, logger); err != nil {
		logger.Warnf("failed to start profiling: %v", err)
	}
	closer.Add("profiler", func(context.Context) error {
		return cfg.Dev.StopProfiling()
	})
	defer func() {
		if err := closer.Close(context.Background()); err != nil {
			logger.Warnf("failed to release resources: %v", err)
		}
	}()

	src, err := source.Open(ctx, logger, source.Options{
		Kind: source.Kind(cfg.Source),
		Path: cfg.Infile,
		S3: source.S3Options{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			AccessKey:       cfg.S3.AccessKey,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			DisableSSL:      cfg.S3.DisableSSL,
			UsePathStyle:    cfg.S3.UsePathStyle,
		},
		Azure: source.AzureOptions{
			AccountName: cfg.Azure.AccountName,
			AccountKey:  cfg.Azure.AccountKey,
		},
	})
	if err != nil {
		logger.Errorf("failed to open input: %v", err)
		return exitFailure
	}
	closer.Add("input", func(context.Context) error {
		return src.Close()
	})

	converter := internal.NewConverter(logger, os.Stdout)
	if _, err := converter.Convert(ctx, src, dataset); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warnf("interrupted: %v", err)
		} else {
			logger.Errorf("%v", err)
		}
		return exitFailure
	}

	return 0
}
