package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"housing-credit/config"
	httpLayer "housing-credit/http"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

type serverTimeouts struct {
	read, write, idle, shutdown, request time.Duration
}

func parseTimeouts(c config.ServerConfig) (serverTimeouts, error) {
	var t serverTimeouts
	var err error
	if t.read, err = config.ParseDuration(c.ReadTimeout, 15*time.Second); err != nil {
		return t, err
	}
	if t.write, err = config.ParseDuration(c.WriteTimeout, 15*time.Second); err != nil {
		return t, err
	}
	if t.idle, err = config.ParseDuration(c.IdleTimeout, 60*time.Second); err != nil {
		return t, err
	}
	if t.shutdown, err = config.ParseDuration(c.ShutdownTimeout, 10*time.Second); err != nil {
		return t, err
	}
	if t.request, err = config.ParseDuration(c.RequestTimeout, 30*time.Second); err != nil {
		return t, err
	}
	return t, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	timeouts, err := parseTimeouts(a.cfg.Server)
	if err != nil {
		return err
	}
	window, err := config.ParseDuration(a.cfg.RateLimit.Window, time.Minute)
	if err != nil {
		return err
	}

	rateLimiter := httpLayer.NewRateLimiter(a.cfg.RateLimit.Capacity, window)
	defer rateLimiter.Stop()

	handler := httpLayer.NewHousingHandler(a.service, a.cfg.Policy.DefaultAnnualRate)
	router := httpLayer.NewRouter(handler, httpLayer.RouterConfig{
		RequestTimeout: timeouts.request,
		Metrics:        a.cfg.Server.Metrics,
		Limiter:        rateLimiter,
	})

	addr := a.cfg.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  timeouts.read,
		WriteTimeout: timeouts.write,
		IdleTimeout:  timeouts.idle,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 API corriendo en %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("starting server: %w", err)
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.shutdown)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}
