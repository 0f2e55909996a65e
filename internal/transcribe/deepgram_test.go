package transcribe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const deepgramResponse = `{
	"metadata": {"duration": 2.5},
	"results": {
		"channels": [{
			"detected_language": "en",
			"alternatives": [{
				"transcript": "hello world",
				"words": [
					{"word": "hello", "start": 0.1, "end": 0.8},
					{"word": "world", "start": 0.9, "end": 1.4}
				]
			}]
		}],
		"utterances": [
			{"start": 0.0, "end": 1.5, "transcript": "hello world"}
		]
	}
}`

func TestDeepgramTranscribe(t *testing.T) {
	t.Parallel()

	audioPath := filepath.Join(t.TempDir(), "a.wav")
	require.NoError(t, os.WriteFile(audioPath, []byte("fake-audio-bytes"), 0o644))

	var gotBody []byte
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(deepgramResponse))
	}))
	t.Cleanup(srv.Close)

	client := &DeepgramClient{
		apiKey:  "secret",
		baseURL: srv.URL,
		client:  srv.Client(),
	}

	res, err := client.Transcribe(context.Background(), Request{
		FilePath:       audioPath,
		Model:          "tiny",
		WordTimestamps: true,
	})
	require.NoError(t, err)

	require.Equal(t, "Token secret", gotAuth)
	require.Equal(t, "fake-audio-bytes", string(gotBody), "request body must be the raw audio file")

	require.Equal(t, "hello world", res.Text)
	require.Equal(t, "en", res.Language)
	require.InDelta(t, 2.5, res.DurationSec, 1e-9)
	require.Len(t, res.Segments, 1)
	require.Len(t, res.Segments[0].Words, 2)
	require.Equal(t, "hello", res.Segments[0].Words[0].Word)
}

func TestDeepgramTranscribeEmptyChannels(t *testing.T) {
	t.Parallel()

	audioPath := filepath.Join(t.TempDir(), "a.wav")
	require.NoError(t, os.WriteFile(audioPath, []byte("x"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": {"channels": []}}`))
	}))
	t.Cleanup(srv.Close)

	client := &DeepgramClient{apiKey: "secret", baseURL: srv.URL, client: srv.Client()}

	_, err := client.Transcribe(context.Background(), Request{FilePath: audioPath, Model: "tiny"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty transcript")
}
