package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prakharsingh-74/meeting-summarizer/internal/summarizer"
	"github.com/prakharsingh-74/meeting-summarizer/internal/transcript"
)

// Process runs one transcript file through the summarization pipeline:
// load, summarize, write .md and .docx outputs, archive the source.
func (p *implPipeline) Process(ctx context.Context, transcriptPath string) error {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Summarizing transcript: %s", transcriptPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Load the transcript
	tr, err := p.loadTranscript(transcriptPath)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}

	// Step 2: Generate the summary
	summary, err := p.client.Generate(ctx, tr, "")
	if err != nil {
		return fmt.Errorf("generate summary: %w", err)
	}

	// Step 3: Write markdown output
	mdPath := filepath.Join(p.cfg.Paths.Output, name+".md")
	if err := p.writeMarkdown(mdPath, name, summary.CurrentText); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}

	// Step 4: Write docx output
	docxPath := filepath.Join(p.cfg.Paths.Output, name+".docx")
	if err := summarizer.WriteDocx(name, summary.CurrentText, docxPath); err != nil {
		p.logger.Warn(ctx, "Failed to write docx output: %v", err)
	}

	// Step 5: Move the transcript to the archived folder
	if err := p.moveToArchived(ctx, transcriptPath); err != nil {
		p.logger.Warn(ctx, "Failed to move transcript to archived folder: %v", err)
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Summarization completed successfully!")
	p.logger.Info(ctx, "Output summary: %s", mdPath)
	p.logger.Info(ctx, "Transcript size: %d chars, summary: %d words", tr.Length, summary.WordCount())
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return nil
}

func (p *implPipeline) loadTranscript(path string) (transcript.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return transcript.Transcript{}, err
	}
	defer f.Close()

	return transcript.Load(f, "", filepath.Base(path))
}

func (p *implPipeline) writeMarkdown(path, name, summary string) error {
	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		name,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)
	return os.WriteFile(path, []byte(md), 0644)
}

func (p *implPipeline) moveToArchived(ctx context.Context, path string) error {
	dest := filepath.Join(p.cfg.Paths.Archived, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return err
	}
	p.logger.Debug(ctx, "Archived %s -> %s", path, dest)
	return nil
}
