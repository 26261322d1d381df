package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"pdfapi/internal/filestore"
	"pdfapi/internal/llm"
	"pdfapi/internal/pdf"
)

// TextService defines the LLM-backed use cases.
type TextService interface {
	// Summarize extracts the text of a PDF and returns its summary.
	Summarize(ctx context.Context, file File) (string, error)
	// Generate returns the model's answer to prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

type textService struct {
	files    *filestore.Manager
	proc     pdf.Processor
	gen      llm.Generator
	maxChars int
	log      zerolog.Logger
}

// NewTextService constructs a new TextService. Documents longer than
// maxChars characters are truncated before summarization.
func NewTextService(files *filestore.Manager, proc pdf.Processor, gen llm.Generator, maxChars int, log zerolog.Logger) TextService {
	return &textService{files: files, proc: proc, gen: gen, maxChars: maxChars, log: log}
}

func (s *textService) Summarize(ctx context.Context, file File) (string, error) {
	start := time.Now()
	up, err := s.files.Stage(ctx, file.Content, file.Filename)
	if err != nil {
		return "", err
	}
	defer up.Close()

	text, err := s.proc.ExtractText(ctx, up, up.Size())
	if err != nil {
		return "", err
	}

	summary, err := llm.Summarize(ctx, s.gen, text, s.maxChars)
	if err != nil {
		return "", err
	}

	s.log.Info().
		Str("operation", "summarize").
		Str("source_filename", file.Filename).
		Int("text_length", len(text)).
		Int("summary_length", len(summary)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("document summarized")
	return summary, nil
}

func (s *textService) Generate(ctx context.Context, prompt string) (string, error) {
	return s.gen.Generate(ctx, prompt)
}
