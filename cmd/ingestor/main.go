// v2
// cmd/ingestor/main.go

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techbytesorg/digital-twins/internal/config"
	"github.com/techbytesorg/digital-twins/internal/httpapi"
	"github.com/techbytesorg/digital-twins/internal/ingest"
	"github.com/techbytesorg/digital-twins/internal/logging"
)

func main() {
	log := logging.New("ingestor.log")

	cfg, err := config.LoadIngestor()
	if err != nil {
		log.Error("configuration error", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := ingest.OpenStore(ctx, cfg.WarehouseDSN, cfg.FeatureTable, cfg.InferredTable, log)
	if err != nil {
		log.Error("warehouse connection failed", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	predictor := ingest.NewClient(cfg.InferenceURL, cfg.InferenceKey, log)
	twins := ingest.NewTwinClient(cfg.TwinServiceURL, log)
	pipeline := ingest.NewPipeline(store, store, predictor, twins, log)

	consumer := ingest.NewConsumer(cfg.KafkaBrokers, cfg.TelemetryTopic, cfg.ConsumerGroup, pipeline, log)
	defer consumer.Close()

	srv := httpapi.New(cfg.ListenAddr, httpapi.StatusFunc(func() any {
		return map[string]any{
			"topic": cfg.TelemetryTopic,
			"group": cfg.ConsumerGroup,
		}
	}), log)
	srv.Start(func(error) { cancel() })

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	log.Info("twin ingestion started",
		"topic", cfg.TelemetryTopic, "group", cfg.ConsumerGroup, "listen", cfg.ListenAddr)
	consumer.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
