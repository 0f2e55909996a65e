package transcribe

import (
	"context"
	"log"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient transcribes through the hosted audio/transcriptions endpoint.
// Model size and beam size are faster-whisper knobs; the API runs whisper-1
// regardless, so they are accepted and ignored.
type OpenAIClient struct {
	client *openai.Client
}

func NewOpenAIClient() *OpenAIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY not set")
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
	}
}

func (c *OpenAIClient) Transcribe(ctx context.Context, req Request) (Result, error) {
	audioReq := openai.AudioRequest{
		Model:       openai.Whisper1,
		FilePath:    req.FilePath,
		Temperature: req.Temperature,
		Format:      openai.AudioResponseFormatVerboseJSON,
	}
	if req.WordTimestamps {
		audioReq.TimestampGranularities = []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
			openai.TranscriptionTimestampGranularityWord,
		}
	}

	var (
		resp openai.AudioResponse
		err  error
	)
	if req.Task == "translate" {
		resp, err = c.client.CreateTranslation(ctx, audioReq)
	} else {
		resp, err = c.client.CreateTranscription(ctx, audioReq)
	}
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Text:        strings.TrimSpace(resp.Text),
		Language:    resp.Language,
		DurationSec: resp.Duration,
	}
	for _, s := range resp.Segments {
		res.Segments = append(res.Segments, Segment{
			Start: s.Start,
			End:   s.End,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	if req.WordTimestamps && len(resp.Words) > 0 && len(res.Segments) > 0 {
		// verbose_json reports words per response, not per segment
		for _, w := range resp.Words {
			res.Segments[0].Words = append(res.Segments[0].Words, Word{
				Start: w.Start,
				End:   w.End,
				Word:  w.Word,
			})
		}
	}

	return res, nil
}
