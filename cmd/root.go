package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	cfgPkg "github.com/xhad/docintel/pkg/config"
)

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "docintel",
	Short: "Analyse documents into a searchable vector index",
	Long: `docintel sends PDFs and images to a layout analysis service, turns the
paragraphs and tables it finds into per-page text, splits that text into
token-bounded chunks and stores them in PostgreSQL with pgvector.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile == "" {
			// .env is optional
			_ = godotenv.Load()
			return nil
		}
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (default: ./.env if present)")

	rootCmd.AddCommand(serveCmd, ingestCmd, searchCmd, askCmd)
}

// loadConfig reads and validates the configuration. Fields under any of the
// skipped prefixes are not validated.
func loadConfig(skip ...string) (*cfgPkg.Config, error) {
	cfg, err := cfgPkg.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	var problems []string
	for _, e := range cfg.Validate() {
		if hasAnyPrefix(e.Field, skip) {
			continue
		}
		problems = append(problems, e.Error())
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration:\n  %s", strings.Join(problems, "\n  "))
	}

	return cfg, nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func newLogger(cfg *cfgPkg.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Log.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
