package doc

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"
)

type DocxWriter struct{}

func NewDocxWriter() *DocxWriter {
	return &DocxWriter{}
}

func (w *DocxWriter) Write(_ context.Context, t Transcript) ([]byte, error) {
	d := docx.New().WithDefaultTheme()

	d.AddParagraph().AddText("Transcription").Size("32").Bold()

	meta := d.AddParagraph()
	meta.AddText("Source: ").Bold()
	source := t.SourceFile
	if source == "" {
		source = "Uploaded file"
	}
	meta.AddText(source)

	meta = d.AddParagraph()
	meta.AddText("Model: ").Bold()
	meta.AddText(t.Model)

	if t.Language != "" {
		meta = d.AddParagraph()
		meta.AddText("Detected language: ").Bold()
		meta.AddText(t.Language)
	}
	if t.DurationSec > 0 {
		meta = d.AddParagraph()
		meta.AddText("Duration: ").Bold()
		meta.AddText(fmt.Sprintf("%.1fs", t.DurationSec))
	}

	d.AddParagraph()

	if t.Timestamps && len(t.Segments) > 0 {
		for _, seg := range t.Segments {
			if strings.TrimSpace(seg.Text) == "" {
				continue
			}
			p := d.AddParagraph()
			p.AddText(fmt.Sprintf("[%.2fs → %.2fs] ", seg.Start, seg.End)).Italic()
			p.AddText(strings.TrimSpace(seg.Text))
		}
	} else if t.Text != "" {
		d.AddParagraph().AddText(t.Text)
	}

	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}
