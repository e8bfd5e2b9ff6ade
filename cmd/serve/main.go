package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"locnarr/cfg"
	"locnarr/internal/app/api"
	"locnarr/pkg/narratives"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "cfg-path", "cfg/cfg.yaml", "path to config file")
	flag.Parse()

	var cfg *cfg.Config
	if cfgFile, err := os.ReadFile(cfgPath); err != nil {
		log.Fatalf("can't open %s file: %v", cfgPath, err)
	} else if err = yaml.Unmarshal(cfgFile, &cfg); err != nil {
		log.Fatal("can't unmarshal cfg file", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	narratives.RegisterMetrics(prometheus.DefaultRegisterer)

	// annotation shards run into gigabytes, a client-wide timeout would cut them off
	httpClient := &http.Client{}

	loader := narratives.New(httpClient, logger.WithGroup("loader"), &cfg.Narratives)

	api := api.NewAPI(&cfg.Api, logger.WithGroup("api"), loader)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Api.Port),
		Handler: api.NewRouter(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		logger.Info("Starting server", "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("ListenAndServe finished", "err", err)
		}
	}()

	<-stop
	logger.Info("Interrupt triggered")

	shutdownTimeout := cfg.Api.Timeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
