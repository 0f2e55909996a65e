package delivery

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDownloadMissingFile(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, &stubTranscriber{}, &stubDocWriter{})

	resp, err := http.Get(srv.URL + "/download/nope.docx")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "File not found", got["error"])
}

func TestDownloadExistingFile(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t, &stubTranscriber{}, &stubDocWriter{})
	require.NoError(t, store.SaveDocument("report.docx", []byte("content")))

	resp, err := http.Get(srv.URL + "/download/report.docx")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Disposition"), "report.docx")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "content", string(body))
}

func TestDownloadTraversalRejected(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, &stubTranscriber{}, &stubDocWriter{})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/download/..%2Fsecret.txt", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NotEqual(t, http.StatusOK, resp.StatusCode)
}
