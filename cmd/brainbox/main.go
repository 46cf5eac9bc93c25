// Command brainbox resamples, bins and synchronises electrophysiology data.
//
// Usage:
//
//	brainbox [-config brainbox.yaml] <command> [flags]
//
// Commands:
//
//	resample    align CSV time series onto one regular grid
//	bin         bin a spikes CSV (times, clusters) per cluster
//	units       summarise spike features per unit
//	ephys-sync  put the spike times of every probe on the session clock
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/pkg/errors"

	"github.com/sartorproj/brainbox/config"
	"github.com/sartorproj/brainbox/logger"
)

// app carries what every command needs.
type app struct {
	cfg    *config.Config
	log    logger.Interface
	stdout io.Writer
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"resample":   {"align CSV time series onto one regular grid", runResample},
	"bin":        {"bin a spikes CSV (times, clusters) per cluster", runBin},
	"units":      {"summarise spike features per unit", runUnits},
	"ephys-sync": {"put the spike times of every probe on the session clock", runEphysSync},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "brainbox:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("brainbox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no command given")
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fs.Usage()
		return errors.Errorf("unknown command %q", name)
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		return err
	}

	zl, err := logger.NewLogger(cfg.LoggerOptions()...)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	ctx = logger.WithRunID(ctx, "")
	log := zl.WithFields(
		logger.NewField(logger.RunIDKey, logger.RunID(ctx)),
		logger.NewField("command", name),
	)

	a := &app{cfg: cfg, log: log, stdout: stdout}
	if err := cmd.run(ctx, a, fs.Args()[1:]); err != nil {
		log.Error(err)
		return err
	}
	return nil
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "usage: brainbox [-config file] <command> [flags]")
	fmt.Fprintln(out, "\ncommands:")

	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(out, "  %-11s %s\n", n, commands[n].summary)
	}
	fmt.Fprintln(out, "\nflags:")
	fs.PrintDefaults()
}
