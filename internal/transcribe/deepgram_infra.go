package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

type DeepgramClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewDeepgramClient() *DeepgramClient {
	key := os.Getenv("DEEPGRAM_API_KEY")
	if key == "" {
		panic("DEEPGRAM_API_KEY not set")
	}

	return &DeepgramClient{
		apiKey:  key,
		baseURL: "https://api.deepgram.com/v1/listen",
		client:  &http.Client{},
	}
}

func (c *DeepgramClient) Transcribe(ctx context.Context, req Request) (Result, error) {
	data, err := os.ReadFile(req.FilePath)
	if err != nil {
		return Result{}, fmt.Errorf("read audio file: %w", err)
	}

	q := url.Values{}
	q.Set("model", "nova-2")
	q.Set("smart_format", "true")
	q.Set("detect_language", "true")
	q.Set("utterances", "true")

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"?"+q.Encode(),
		bytes.NewReader(data),
	)
	if err != nil {
		return Result{}, err
	}

	httpReq.Header.Set("Authorization", "Token "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("deepgram request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return Result{}, fmt.Errorf("deepgram error: %s", body)
	}

	var parsed struct {
		Metadata struct {
			Duration float64 `json:"duration"`
		} `json:"metadata"`
		Results struct {
			Channels []struct {
				DetectedLanguage string `json:"detected_language"`
				Alternatives     []struct {
					Transcript string `json:"transcript"`
					Words      []struct {
						Word  string  `json:"word"`
						Start float64 `json:"start"`
						End   float64 `json:"end"`
					} `json:"words"`
				} `json:"alternatives"`
			} `json:"channels"`
			Utterances []struct {
				Start      float64 `json:"start"`
				End        float64 `json:"end"`
				Transcript string  `json:"transcript"`
			} `json:"utterances"`
		} `json:"results"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, fmt.Errorf("decode deepgram: %w", err)
	}

	if len(parsed.Results.Channels) == 0 ||
		len(parsed.Results.Channels[0].Alternatives) == 0 {
		return Result{}, fmt.Errorf("empty transcript")
	}

	channel := parsed.Results.Channels[0]
	res := Result{
		Text:        strings.TrimSpace(channel.Alternatives[0].Transcript),
		Language:    channel.DetectedLanguage,
		DurationSec: parsed.Metadata.Duration,
	}

	for _, u := range parsed.Results.Utterances {
		res.Segments = append(res.Segments, Segment{
			Start: u.Start,
			End:   u.End,
			Text:  strings.TrimSpace(u.Transcript),
		})
	}

	if req.WordTimestamps && len(res.Segments) > 0 {
		words := channel.Alternatives[0].Words
		for si := range res.Segments {
			seg := &res.Segments[si]
			for _, w := range words {
				if w.Start >= seg.Start && w.End <= seg.End {
					seg.Words = append(seg.Words, Word{Start: w.Start, End: w.End, Word: w.Word})
				}
			}
		}
	}

	return res, nil
}
