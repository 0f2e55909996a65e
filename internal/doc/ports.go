package doc

import (
	"context"

	"github.com/Vovarama1992/nova_transcribe/internal/transcribe"
)

// Transcript carries everything the document shows besides the text itself.
type Transcript struct {
	SourceFile  string
	Model       string
	Language    string
	DurationSec float64
	Text        string
	Segments    []transcribe.Segment
	Timestamps  bool
}

type Writer interface {
	Write(ctx context.Context, t Transcript) ([]byte, error)
}
