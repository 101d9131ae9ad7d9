// Command octischem-serve runs the schematization pipeline as an HTTP
// service instead of a one-shot CLI invocation, for callers that want to
// submit networks over the network rather than as files on disk.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/octilinear/schematize/internal/config"
	"github.com/octilinear/schematize/internal/httpapi"
	"github.com/octilinear/schematize/internal/metrics"
)

var addr = flag.String("addr", ":8080", "Address to listen on for /schematize, /healthz, and /metrics")

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("octischem-serve: %v", err)
	}

	coll := metrics.NewCollector()
	router := httpapi.NewRouter(cfg, coll)

	srv := &http.Server{Addr: *addr, Handler: router}
	go func() {
		log.Printf("octischem-serve listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("octischem-serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("octischem-serve: shutdown error: %v", err)
	}
}
