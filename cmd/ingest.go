package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xhad/docintel/pkg/pipeline"
)

var dryRun bool

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Analyse local documents and store their chunks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skip := []string{}
		if dryRun {
			skip = append(skip, "database.", "llm.")
		}
		cfg, err := loadConfig(skip...)
		if err != nil {
			return err
		}
		log := newLogger(cfg)
		ctx := context.Background()

		a, err := newAnalyzer(cfg)
		if err != nil {
			return err
		}

		progress := &progressObserver{}
		observers := pipeline.Observers{pipeline.NewLogObserver(log), progress}

		if dryRun {
			p := pipeline.New(a, nil, nil, observers)
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				records, err := p.AnalyseRecords(ctx, data, filepath.Base(path))
				progress.abort()
				if err != nil {
					return err
				}
				for _, r := range records {
					color.Cyan("--- %s, page %d ---", r.FileName, r.PageNumber)
					fmt.Println(r.Text)
				}
			}
			return nil
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

		p := pipeline.New(a, proc, vectorStore, observers)

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			if err := p.Analyse(ctx, data, filepath.Base(path)); err != nil {
				progress.abort()
				color.Red("✗ %s: %v\n", path, err)
				return err
			}
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the assembled page text instead of storing chunks")
}
