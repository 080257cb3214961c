package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"incident-registry/config"
	"incident-registry/core/appbootstrap"
	"incident-registry/core/utils"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "incidentd: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("incidentd", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", os.Getenv("INCIDENTS_CONFIG"), "path to YAML config file")
	listen := fs.String("listen", "", "listen address, overrides listen_addr")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error), overrides log.level")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of incidentd:\n%s\n%s", fs.FlagUsages(), config.Usage())
	}
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger, err := utils.NewLoggerWithOptions(utils.LoggerOptions{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app, err := appbootstrap.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Printf("incidentd starting env=%s", cfg.AppEnv)
	return app.Run(ctx)
}
