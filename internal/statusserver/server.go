// Package statusserver runs a small HTTP endpoint for daemon/wait-mode
// invocations: a health check and a prometheus scrape target, wired the
// same way the teacher wraps its router in gorilla/handlers.
package statusserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nwpfetch/nwpfetch/pkg/log"
)

// Server serves /healthz and /metrics.
type Server struct {
	Addr string
	http *http.Server
	ln   net.Listener
	done chan struct{}
}

// New builds a Server bound to addr. It does not start listening until
// Start is called.
func New(addr string) *Server {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Use(handlers.CompressHandler)
	logged := handlers.CustomLoggingHandler(log.InfoWriter, r, func(w io.Writer, params handlers.LogFormatterParams) {
		log.Finfof(w, "%s %s (Response: %d, Size: %d)", params.Request.Method, params.URL.RequestURI(), params.StatusCode, params.Size)
	})

	return &Server{
		Addr: addr,
		http: &http.Server{
			Addr:         addr,
			Handler:      logged,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		done: make(chan struct{}),
	}
}

// Start begins serving in a background goroutine; it returns once the
// listener is bound so callers know the address is ready.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		defer close(s.done)
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Errorf("statusserver: serve failed: %v", err)
		}
	}()
	log.Infof("statusserver: listening at %s", s.Addr)
	return nil
}

// Shutdown gracefully stops the server, waiting for Start's goroutine to
// exit.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return err
	}
	<-s.done
	return nil
}
