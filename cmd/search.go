package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xhad/docintel/pkg/llm"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find the stored chunks closest to a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig("analysis.")
		if err != nil {
			return err
		}
		ctx := context.Background()

		vectorStore, err := newVectorStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer vectorStore.Close()

		spinner := getSpinner("Searching documents...")
		chunks, err := vectorStore.Search(ctx, strings.Join(args, " "), searchLimit)
		spinner.Finish()
		fmt.Println()
		if err != nil {
			return err
		}

		if len(chunks) == 0 {
			color.Yellow("No matching chunks")
			return nil
		}
		for _, c := range chunks {
			color.Cyan("%s, page %d (score %.3f)", c.FileName, c.PageNumber, c.Score)
			fmt.Printf("%s\n\n", c.Text)
		}
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from the stored documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig("analysis.")
		if err != nil {
			return err
		}
		ctx := context.Background()
		question := strings.Join(args, " ")

		vectorStore, err := newVectorStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer vectorStore.Close()

		chatEngine, err := newChatEngine(cfg)
		if err != nil {
			return err
		}

		spinner := getSpinner("Thinking...")
		chunks, err := vectorStore.Search(ctx, question, searchLimit)
		if err != nil {
			spinner.Finish()
			return err
		}
		answer, err := chatEngine.Answer(ctx, question, chunks)
		spinner.Finish()
		fmt.Println()
		if err != nil {
			return err
		}

		assistant := color.New(color.FgCyan).PrintfFunc()
		assistant("Assistant: %s\n", answer)
		if sources := llm.Sources(chunks); len(sources) > 0 {
			color.Green("\nSources:\n  %s", strings.Join(sources, "\n  "))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "k", 0, "Number of chunks to retrieve (default from config)")
	askCmd.Flags().IntVarP(&searchLimit, "limit", "k", 0, "Number of chunks to retrieve (default from config)")
}
