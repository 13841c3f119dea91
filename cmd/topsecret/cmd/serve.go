package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/jmcleod/topsecret/api"
)

const apiBasePath = "/api/v1"

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the listing and decoder over HTTP",
	Long: `Starts a plain HTTP server exposing the file listing and decoder as JSON.
The server binds to 127.0.0.1 by default and is meant for local tooling only.

Every request re-reads the data directory and the key.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Address to listen on (default from config, 127.0.0.1:8080)")
}

func newRouter() http.Handler {
	a := api.New(newController, api.WithLogger(logger), api.WithBasePath(apiBasePath))

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Mount(apiBasePath, a.Router())
	return r
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := cfg.Server.Listen
	if listenAddr != "" {
		addr = listenAddr
	}

	// Registered before anything is announced so an early Ctrl-C still
	// shuts down gracefully.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	server := &http.Server{
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			done <- fmt.Errorf("server failed: %w", err)
			return
		}
		done <- nil
	}()

	out := cmd.OutOrStdout()
	printBanner(out)
	fmt.Fprintf(out, "Serving %s on http://%s%s (keys: %s)...\n", cfg.DataDir, ln.Addr(), apiBasePath, cfg.KeyDir)
	logger.Info("server started",
		slog.String("listen", ln.Addr().String()),
		slog.String("data_dir", cfg.DataDir))

	select {
	case sig := <-quit:
		fmt.Fprintf(out, "\nReceived %s, shutting down...\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-done:
		return err
	}
}
