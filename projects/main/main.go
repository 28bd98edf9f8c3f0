package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/open-control-systems/time-anchor/components/core"
	"github.com/open-control-systems/time-anchor/components/http/htclient"
	"github.com/open-control-systems/time-anchor/components/http/htcore"
	"github.com/open-control-systems/time-anchor/components/pipeline/pipanchor"
	"github.com/open-control-systems/time-anchor/components/pipeline/piphttp"
	"github.com/open-control-systems/time-anchor/components/system/sysmdns"
)

// Timestamps before this point are never accepted as anchors.
var startPoint = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		flagCfg    = defaultConfig()
	)

	cmd := &cobra.Command{
		Use:          "time-anchor",
		Short:        "Offline wall clock estimation anchored to the device uptime",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := flagCfg

			if configPath != "" {
				fileCfg, err := loadConfig(configPath)
				if err != nil {
					return err
				}

				fileCfg.merge(cmd.Flags(), flagCfg)
				cfg = fileCfg
			}

			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file path")
	flagCfg.registerFlags(cmd.Flags())

	cmd.AddCommand(newNowCmd(), newSetCmd())

	return cmd
}

func run(cfg config) error {
	if err := core.SetupLogger(cfg.LogPath, cfg.Debug); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to setup log file: ", err)
	}

	interval, err := cfg.systemClockInterval()
	if err != nil {
		return err
	}

	appContext, cancelFunc := signal.NotifyContext(context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer cancelFunc()

	fanoutCloser := &core.FanoutCloser{}
	defer fanoutCloser.Close()

	// Registered first to be closed last.
	fanoutCloser.Add("logger", core.FuncCloser(func() error {
		core.SyncLogger()

		return nil
	}))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	anchorPipeline, err := pipanchor.NewPipeline(appContext, fanoutCloser, registry,
		pipanchor.Params{
			DBPath:              cfg.DBPath,
			DBOpenTimeout:       time.Second * 5,
			TrustSystemClock:    cfg.TrustSystemClock,
			SystemClockInterval: interval,
			RestoreInterval:     time.Second * 10,
		})
	if err != nil {
		return fmt.Errorf("failed to initialize anchor pipeline: %w", err)
	}

	serverPipeline, err := piphttp.NewServerPipeline(fanoutCloser, htcore.ServerParams{
		Host: cfg.HTTPHost,
		Port: cfg.HTTPPort,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP pipeline: %w", err)
	}

	source := anchorPipeline.GetTimeSource()

	mux := serverPipeline.GetServeMux()
	mux.Handle("/api/v1/time",
		htcore.NewTimeHandler(source, anchorPipeline.GetMonotonicClock(), startPoint))
	mux.Handle("/api/v1/time/anchor", htcore.NewAnchorHandler(source))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	if err := anchorPipeline.Start(); err != nil {
		return fmt.Errorf("failed to start anchor pipeline: %w", err)
	}

	serverPipeline.Start()

	if cfg.MDNSEnabled {
		advertiser, err := sysmdns.NewZeroconfAdvertiser(sysmdns.ZeroconfAdvertiserParams{
			Instance:   cfg.MDNSInstance,
			Service:    "_http._tcp",
			Domain:     "local",
			Port:       serverPipeline.GetServer().Port(),
			TxtRecords: []string{"api_base_path=/api/", "api_version=v1"},
		})
		if err != nil {
			core.LogErr.Printf("main: failed to start mDNS advertiser: %v\n", err)
		} else {
			fanoutCloser.Add("mdns-advertiser", advertiser)
		}
	}

	<-appContext.Done()

	core.LogInf.Printf("main: stopping\n")

	return nil
}

func newNowCmd() *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the UNIX time estimated by the running service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := htclient.NewTimeClient(cmd.Context(), htclient.NewDefaultClient(),
				url, timeout)

			timestamp, err := client.GetTimestamp()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), timestamp)

			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "http://localhost:8080/api/v1/time", "time endpoint URL")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Second*10, "HTTP request timeout")

	return cmd
}

func newSetCmd() *cobra.Command {
	var (
		url     string
		timeout time.Duration
		value   int64
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Anchor the running service to the UNIX time, local time if not set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("value") {
				value = time.Now().Unix()
			}

			client := htclient.NewTimeClient(cmd.Context(), htclient.NewDefaultClient(),
				url, timeout)

			return client.SetTimestamp(value)
		},
	}

	cmd.Flags().StringVar(&url, "url", "http://localhost:8080/api/v1/time", "time endpoint URL")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Second*10, "HTTP request timeout")
	cmd.Flags().Int64Var(&value, "value", 0, "UNIX time in seconds")

	return cmd
}
