package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/graphwalker/graphwalker-go/internal/config"
	"github.com/graphwalker/graphwalker-go/internal/machine"
	"github.com/graphwalker/graphwalker-go/internal/session"
)

// runOnline implements "graphwalker online <INPUT> [--seed N] [--port N]
// [--token-secret S] [--catalog NAME@VERSION]": load a model document, wrap
// its Machine in an Online Session, and serve /hasNext, /getNext, /stream
// until interrupted. Uses a listen-in-goroutine -> signal.Notify(SIGINT,
// SIGTERM) -> httpServer.Shutdown(ctx) lifecycle.
func runOnline(log zerolog.Logger, args []string) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("online", flag.ContinueOnError)
	seed := fs.Uint64("seed", 1, "deterministic RNG seed")
	port := fs.Int("port", 8887, "listen port")
	tokenSecret := fs.String("token-secret", cfg.TokenSecret, "HS256 bearer token secret (empty disables auth)")
	catalogRef := fs.String("catalog", "", "load this NAME@VERSION from the model catalog; INPUT is then ignored")
	// Accept flags after INPUT as well as before it.
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		args = append(append([]string{}, args[1:]...), args[0])
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("online requires exactly one INPUT path")
	}

	set, err := loadModelSet(cfg, fs.Arg(0), *catalogRef)
	if err != nil {
		return err
	}

	m := machine.New(log)
	m.Seed(*seed)
	if err := m.LoadModels(set); err != nil {
		return err
	}

	sess := session.New(m)
	if err := sess.Reset(); err != nil {
		return err
	}

	srv := session.NewServer(sess, log, *tokenSecret)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("address", httpServer.Addr).Msg("online session listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			os.Exit(exSoftware)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down online session")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return err
	}

	log.Info().Msg("online session exited gracefully")
	return nil
}
