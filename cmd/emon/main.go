// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command emon replays monomial congruence scenarios.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/irifrance/emon/internal/monitor"
)

type options struct {
	verbose     bool
	color       string
	stats       bool
	metricsAddr string
	linger      time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "emon [flags] scenario.yaml...",
		Short:         "Replay monomial congruence scenarios",
		Long:          usage,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}
	opts.addFlags(cmd.Flags())
	return cmd
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log merges and rehashes at debug level")
	f.StringVar(&o.color, "color", "auto", "colorize output: auto, always or never")
	f.BoolVar(&o.stats, "stats", false, "log table statistics after each scenario")
	f.StringVar(&o.metricsAddr, "metrics-addr", "", "address to serve prometheus metrics and profiles (eg :9090)")
	f.DurationVar(&o.linger, "linger", 0, "keep serving metrics this long after the last scenario")
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	stdout := cmd.OutOrStdout()
	mode := o.color
	f, isFile := stdout.(*os.File)
	if !isFile && mode == "auto" {
		mode = "never"
	}
	if err := setColor(mode, f); err != nil {
		return err
	}
	lvl := slog.LevelInfo
	if o.verbose {
		lvl = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

	r := &runner{log: log, out: newPrinter(stdout), stats: o.stats}
	if o.metricsAddr != "" {
		r.mon = monitor.New(nil)
		stop, err := serveMetrics(o.metricsAddr, r.mon, log)
		if err != nil {
			return err
		}
		defer stop()
	}

	var errs []error
	for _, p := range args {
		ss, err := loadScenarios(p)
		if err != nil {
			errs = append(errs, err)
			log.Error("load", "path", p, "err", err)
			continue
		}
		for _, s := range ss {
			if err := r.run(s); err != nil {
				errs = append(errs, err)
				log.Error("scenario failed", "err", err)
			}
		}
	}
	if r.mon != nil && o.linger > 0 {
		log.Info("lingering", "addr", o.metricsAddr, "for", o.linger)
		select {
		case <-time.After(o.linger):
		case <-cmd.Context().Done():
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d failures: %w", len(errs), errors.Join(errs...))
	}
	return nil
}

// serveMetrics serves m, the go runtime collectors and pprof profiles on
// addr until the returned stop function is called.
func serveMetrics(addr string, m *monitor.Monitor, log *slog.Logger) (func(), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(m, collectors.NewGoCollector())
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", "err", err)
		}
	}()
	log.Info("serving metrics", "addr", ln.Addr().String())
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("metrics shutdown", "err", err)
		}
	}, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "emon: %s\n", err)
		cancel()
		os.Exit(1)
	}
}
