// Command pointerproxy-replay feeds a script of native input events to a
// scene and prints the pointer events its listeners receive, one JSON object
// per line.
//
// Usage:
//
//	pointerproxy-replay [flags] script.json
//
// A script path of "-" reads the script from standard input.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"honnef.co/go/pointerproxy/config"
	"honnef.co/go/pointerproxy/logging"
	"honnef.co/go/pointerproxy/proxy"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("honnef.co/go/pointerproxy/cmd/pointerproxy-replay")

type flags struct {
	config    string
	mode      string
	logLevel  string
	logFormat string
}

func main() {
	var f flags
	flag.StringVar(&f.config, "config", "", "path to a TOML config file")
	flag.StringVar(&f.mode, "mode", "", "event source mode: synthesize, native or vendor (overrides config)")
	flag.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	flag.StringVar(&f.logFormat, "log-format", "", "log format: text or json (overrides config)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] script.json\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f, flag.Arg(0), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "pointerproxy-replay: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return config.Config{}, err
	}
	if f.mode != "" {
		cfg.Mode = f.mode
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, f flags, path string, stdin io.Reader, stdout io.Writer) (err error) {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "replay")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("replay.script", path), attribute.String("replay.mode", cfg.Mode))

	r := stdin
	if path != "-" {
		fd, err := os.Open(path)
		if err != nil {
			return err
		}
		defer fd.Close()
		r = fd
	}
	script, err := DecodeScript(r)
	if err != nil {
		return err
	}

	logger.Debug("replaying script", "path", path, "events", len(script.Events), "mode", cfg.Mode)
	if err := script.Run(ctx, stdout, proxy.WithConfig(cfg), proxy.WithLogger(logger)); err != nil {
		return err
	}
	return ctx.Err()
}
