package transcribe

import (
	"context"
	"errors"
)

// ErrModelLoad marks failures to load or resolve the requested model.
// The delivery layer maps it to 400, everything else to 500.
var ErrModelLoad = errors.New("model load failed")

type Request struct {
	FilePath       string
	Model          string
	BeamSize       int
	Temperature    float32
	Task           string // "transcribe" | "translate"
	WordTimestamps bool
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Result struct {
	Text        string
	Language    string
	DurationSec float64
	Segments    []Segment
}

type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (Result, error)
}
