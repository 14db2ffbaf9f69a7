package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xhad/docintel/pkg/pipeline"
	"github.com/xhad/docintel/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP upload, search and ask API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newAnalyzer(cfg)
		if err != nil {
			return err
		}
		proc, err := newProcessor(cfg)
		if err != nil {
			return err
		}
		vectorStore, err := newVectorStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer vectorStore.Close()

		chatEngine, err := newChatEngine(cfg)
		if err != nil {
			return err
		}

		p := pipeline.New(a, proc, vectorStore, pipeline.NewLogObserver(log))
		srv := server.New(p, log,
			server.WithRetrieval(vectorStore, chatEngine, cfg.Database.SearchLimit))

		httpServer := &http.Server{
			Addr:        ":" + cfg.Server.Port,
			Handler:     srv,
			ReadTimeout: 60 * time.Second,
			IdleTimeout: 60 * time.Second,
		}

		go func() {
			<-ctx.Done()
			log.Info("shutting down...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting docintel", "port", cfg.Server.Port, "analysis_backend", cfg.Analysis.Backend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			return err
		}
		return nil
	},
}
