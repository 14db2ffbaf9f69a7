package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// progressObserver renders pipeline checkpoints as a terminal spinner.
type progressObserver struct {
	bar *progressbar.ProgressBar
}

func (o *progressObserver) AnalysisStarted(fileName string, size int) {
	o.bar = getSpinner(fmt.Sprintf("Analysing %s (%d bytes)...", fileName, size))
}

func (o *progressObserver) PageAnalyzed(fileName string, pageNumber, paragraphs int) {
	o.describe(color.BlueString("Page %d of %s: %d paragraphs", pageNumber, fileName, paragraphs))
}

func (o *progressObserver) TablesExtracted(fileName string, pageNumber, tables int) {
	if tables > 0 {
		o.describe(color.BlueString("Page %d of %s: %d tables", pageNumber, fileName, tables))
	}
}

func (o *progressObserver) ChunksSplit(fileName string, records, chunks int) {
	o.describe(color.BlueString("Storing %d chunks from %d pages...", chunks, records))
}

func (o *progressObserver) IngestCompleted(fileName string, chunks int) {
	if o.bar != nil {
		o.bar.Finish()
	}
	color.Green("\n✓ %s: %d chunks stored\n", fileName, chunks)
}

func (o *progressObserver) describe(description string) {
	if o.bar == nil {
		return
	}
	o.bar.Describe(description)
	o.bar.Add(1)
}

func (o *progressObserver) abort() {
	if o.bar != nil {
		o.bar.Finish()
		fmt.Println()
	}
}
