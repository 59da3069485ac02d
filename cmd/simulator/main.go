// v3
// cmd/simulator/main.go

package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/techbytesorg/digital-twins/internal/config"
	"github.com/techbytesorg/digital-twins/internal/httpapi"
	"github.com/techbytesorg/digital-twins/internal/logging"
	"github.com/techbytesorg/digital-twins/internal/sim"
	"github.com/techbytesorg/digital-twins/internal/telemetry"
)

func main() {
	log := logging.New("simulator.log")

	cfg, err := config.LoadSimulator(log)
	if err != nil {
		log.Error("configuration error", "err", err)
		os.Exit(1)
	}

	minutes := cfg.DurationMinutes
	if minutes <= 0 {
		minutes = promptDuration(5)
	}
	duration := time.Duration(minutes) * time.Minute

	sink, err := telemetry.NewSink(cfg, log)
	if err != nil {
		log.Error("telemetry sink setup failed", "err", err)
		os.Exit(1)
	}
	defer sink.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	s := sim.New(sim.Params{
		UnitID:       cfg.UnitID,
		Rooms:        cfg.Rooms,
		TickInterval: cfg.TickInterval,
		ErrorBackoff: cfg.ErrorBackoff,
	}, sink, rng, log, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httpapi.New(cfg.ListenAddr, httpapi.StatusFunc(func() any { return s.Snapshot() }), log)
	srv.Start(func(error) { cancel() })

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	if err := s.Run(ctx, duration); err != nil {
		log.Error("simulation failed", "err", err)
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

// promptDuration asks on stdin; anything unparsable falls back to def.
func promptDuration(def int) int {
	fmt.Printf("Enter simulation duration in minutes (default %d): ", def)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	n, err := strconv.Atoi(line)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
