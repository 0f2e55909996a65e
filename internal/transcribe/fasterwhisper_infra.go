package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	_ "embed"
)

//go:embed assets/faster_whisper.py
var fwScript []byte

// FasterWhisperClient runs transcriptions through a python helper so the
// service does not link against CUDA/ctranslate2. faster-whisper caches model
// weights on disk, so passing the model per call keeps requests independent
// and no global model reference has to be swapped between them.
type FasterWhisperClient struct {
	python      string
	device      string
	computeType string
	slots       chan struct{}

	// the helper script is materialized once per process; rewriting it per
	// call would race with sibling requests already exec'ing it
	scriptOnce sync.Once
	scriptPath string
	scriptErr  error
}

func NewFasterWhisperClient() *FasterWhisperClient {
	python := os.Getenv("WHISPER_PYTHON")
	if python == "" {
		python = "python3"
	}

	device := os.Getenv("WHISPER_DEVICE")
	if device == "" {
		device = "auto"
	}

	computeType := os.Getenv("WHISPER_COMPUTE_TYPE")
	if computeType == "" {
		computeType = "int8"
	}

	workers := 2
	if v := os.Getenv("WHISPER_MAX_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			workers = n
		}
	}

	return &FasterWhisperClient{
		python:      python,
		device:      device,
		computeType: computeType,
		slots:       make(chan struct{}, workers),
	}
}

type fwOutput struct {
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
		Words []struct {
			Start float64 `json:"start"`
			End   float64 `json:"end"`
			Word  string  `json:"word"`
		} `json:"words"`
	} `json:"segments"`
}

func (c *FasterWhisperClient) helperScript() (string, error) {
	c.scriptOnce.Do(func() {
		f, err := os.CreateTemp("", "nova_faster_whisper_*.py")
		if err != nil {
			c.scriptErr = fmt.Errorf("create helper script: %w", err)
			return
		}
		if _, err := f.Write(fwScript); err != nil {
			f.Close()
			os.Remove(f.Name())
			c.scriptErr = fmt.Errorf("write helper script: %w", err)
			return
		}
		if err := f.Close(); err != nil {
			os.Remove(f.Name())
			c.scriptErr = fmt.Errorf("close helper script: %w", err)
			return
		}
		c.scriptPath = f.Name()
	})
	return c.scriptPath, c.scriptErr
}

func (c *FasterWhisperClient) Transcribe(ctx context.Context, req Request) (Result, error) {
	select {
	case c.slots <- struct{}{}:
		defer func() { <-c.slots }()
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	scriptPath, err := c.helperScript()
	if err != nil {
		return Result{}, err
	}

	args := []string{
		scriptPath,
		"--audio", req.FilePath,
		"--model", req.Model,
		"--device", c.device,
		"--compute-type", c.computeType,
		"--beam-size", strconv.Itoa(req.BeamSize),
		"--temperature", strconv.FormatFloat(float64(req.Temperature), 'f', -1, 32),
		"--task", req.Task,
	}
	if req.WordTimestamps {
		args = append(args, "--word-timestamps")
	}

	cmd := exec.CommandContext(ctx, c.python, args...)
	cmd.Env = os.Environ()

	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			stderr := strings.TrimSpace(string(ee.Stderr))
			if msg, ok := strings.CutPrefix(stderr, "model_load_error:"); ok {
				return Result{}, fmt.Errorf("%w: %s", ErrModelLoad, strings.TrimSpace(msg))
			}
			return Result{}, fmt.Errorf("faster-whisper failed: %s", stderr)
		}
		return Result{}, fmt.Errorf("run helper: %w", err)
	}

	return parseFasterWhisperOutput(out)
}

func parseFasterWhisperOutput(out []byte) (Result, error) {
	var parsed fwOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return Result{}, fmt.Errorf("parse helper output: %w", err)
	}

	res := Result{
		Language:    parsed.Language,
		DurationSec: parsed.Duration,
	}

	var parts []string
	for _, s := range parsed.Segments {
		seg := Segment{
			Start: s.Start,
			End:   s.End,
			Text:  strings.TrimSpace(s.Text),
		}
		for _, w := range s.Words {
			seg.Words = append(seg.Words, Word{Start: w.Start, End: w.End, Word: w.Word})
		}
		res.Segments = append(res.Segments, seg)
		if seg.Text != "" {
			parts = append(parts, seg.Text)
		}
	}
	res.Text = strings.Join(parts, " ")

	return res, nil
}
