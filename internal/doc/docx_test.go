package doc

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/nova_transcribe/internal/transcribe"
)

func documentXML(t *testing.T, data []byte) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(content)
	}

	t.Fatal("word/document.xml missing from generated docx")
	return ""
}

func TestDocxContainsMetadataAndText(t *testing.T) {
	t.Parallel()

	data, err := NewDocxWriter().Write(context.Background(), Transcript{
		SourceFile:  "standup.mp3",
		Model:       "small",
		Language:    "en",
		DurationSec: 42.3,
		Text:        "we shipped the thing",
	})
	require.NoError(t, err)

	xml := documentXML(t, data)
	require.Contains(t, xml, "Transcription")
	require.Contains(t, xml, "standup.mp3")
	require.Contains(t, xml, "small")
	require.Contains(t, xml, "en")
	require.Contains(t, xml, "42.3s")
	require.Contains(t, xml, "we shipped the thing")
}

func TestDocxFallsBackWhenFilenameMissing(t *testing.T) {
	t.Parallel()

	data, err := NewDocxWriter().Write(context.Background(), Transcript{
		Model: "tiny",
		Text:  "hello",
	})
	require.NoError(t, err)

	xml := documentXML(t, data)
	require.Contains(t, xml, "Uploaded file")
	require.NotContains(t, xml, "Detected language")
	require.NotContains(t, xml, "Duration")
}

func TestDocxTimestampedSegments(t *testing.T) {
	t.Parallel()

	data, err := NewDocxWriter().Write(context.Background(), Transcript{
		SourceFile: "talk.wav",
		Model:      "base",
		Text:       "one two",
		Timestamps: true,
		Segments: []transcribe.Segment{
			{Start: 0, End: 1.5, Text: "one"},
			{Start: 1.5, End: 3, Text: "two"},
		},
	})
	require.NoError(t, err)

	xml := documentXML(t, data)
	require.Contains(t, xml, "[0.00s")
	require.Contains(t, xml, "1.50s]")
	require.Contains(t, xml, "one")
	require.Contains(t, xml, "two")
}

func TestDocxEmptyTranscriptStillHasMetadata(t *testing.T) {
	t.Parallel()

	data, err := NewDocxWriter().Write(context.Background(), Transcript{
		SourceFile: "silence.wav",
		Model:      "tiny",
	})
	require.NoError(t, err)

	xml := documentXML(t, data)
	require.Contains(t, xml, "silence.wav")
}
