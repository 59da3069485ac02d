// v2
// internal/httpapi/server.go

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusSource provides the JSON document served at /status.
type StatusSource interface {
	Snapshot() any
}

// StatusFunc adapts a plain function to StatusSource.
type StatusFunc func() any

func (f StatusFunc) Snapshot() any { return f() }

// Server is the operational HTTP surface: health, status, and metrics.
type Server struct {
	http *http.Server
	log  *slog.Logger
}

func NewRouter(status StatusSource) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", handleHealth).Methods("GET")
	r.HandleFunc("/status", handleStatus(status)).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return r
}

func New(addr string, status StatusSource, log *slog.Logger) *Server {
	router := NewRouter(status)
	logged := handlers.LoggingHandler(os.Stdout, router)
	return &Server{
		http: &http.Server{Addr: addr, Handler: logged},
		log:  log.With("component", "http"),
	}
}

// Start serves in a background goroutine; a listen failure invokes onError.
func (s *Server) Start(onError func(error)) {
	go func() {
		s.log.Info("http listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server error", "err", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleStatus(status StatusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status.Snapshot())
	}
}
