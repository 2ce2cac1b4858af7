// Command msaflow-server provides a REST API for msaflow operations.
//
// Usage:
//
//	msaflow-server [options]
//
// Options:
//
//	-port     Port to listen on (default: 8080)
//	-host     Host to bind to (default: localhost)
//	-matrix   Extra substitution matrix file to serve
//	-v        Log at debug level
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/aria-lang/msaflow-go/api/handlers"
	"github.com/aria-lang/msaflow-go/api/middleware"
	"github.com/aria-lang/msaflow-go/internal/substitution"
)

func newRouter(api *handlers.API) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", api.Routes)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(homePage))
	})
	return r
}

const homePage = `<!DOCTYPE html>
<html>
<head>
    <title>msaflow API</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
        pre { background: #f3f4f6; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
        .endpoint { margin: 1rem 0; padding: 1rem; border: 1px solid #e5e7eb; border-radius: 0.5rem; }
        .method { display: inline-block; padding: 0.25rem 0.5rem; background: #10b981; color: white; border-radius: 0.25rem; font-size: 0.875rem; }
    </style>
</head>
<body>
    <h1>msaflow API</h1>
    <p>A REST API for multiple sequence alignments.</p>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/parse</code>
        <p>Parse PHYLIP alignments.</p>
        <pre>{"phylip": "2 4\nfirst     AC-G\nsecond    ACTG\n"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/counts?matrix=blosum62</code>
        <p>Count identities, mismatches and gaps over all row pairs.</p>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/format</code>
        <p>Render gapped rows as PHYLIP.</p>
        <pre>{"ids": ["first", "second"], "rows": ["AC-G", "ACTG"]}</pre>
    </div>

    <div class="endpoint">
        <span class="method">GET</span> <code>/api/matrix/blosum62/score/W/W</code>
        <p>Look up a substitution score.</p>
    </div>
</body>
</html>`

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	host := flag.String("host", "localhost", "Host to bind to")
	matrixPath := flag.String("matrix", "", "Extra substitution matrix file to serve")
	verbose := flag.Bool("v", false, "Log at debug level")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	var extra []*substitution.Matrix
	if *matrixPath != "" {
		m, err := substitution.Load(*matrixPath)
		if err != nil {
			log.WithError(err).WithField("path", *matrixPath).Fatal("Could not load matrix")
		}
		extra = append(extra, m)
	}

	addr := fmt.Sprintf("%s:%d", *host, *port)
	server := &http.Server{
		Addr:         addr,
		Handler:      newRouter(handlers.NewAPI(extra...)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("Server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Fatal("Could not gracefully shutdown")
		}
		close(done)
	}()

	log.WithField("addr", addr).Info("msaflow API server starting")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).WithField("addr", addr).Fatal("Could not listen")
	}

	<-done
	log.Info("Server stopped")
}
