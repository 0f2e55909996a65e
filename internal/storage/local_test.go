package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		wantBase string
		wantExt  string
	}{
		{"plain", "meeting.mp3", "meeting", ".mp3"},
		{"no extension", "recording", "recording", ".wav"},
		{"empty", "", "audio", ".wav"},
		{"uppercase extension", "Voice.WAV", "Voice", ".wav"},
		{"path stripped", "../../etc/passwd.ogg", "passwd", ".ogg"},
		{"hidden file", ".foo.mp3", "foo", ".mp3"},
		{"dots only base", ".mp3", "audio", ".mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base, ext := SplitName(tt.filename)
			require.Equal(t, tt.wantBase, base)
			require.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestSaveUploadWritesUniqueFiles(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.SaveUpload("clip.mp3", strings.NewReader("abc"))
	require.NoError(t, err)
	second, err := store.SaveUpload("clip.mp3", strings.NewReader("def"))
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, strings.HasPrefix(filepath.Base(first), "clip_"))
	require.True(t, strings.HasSuffix(first, ".mp3"))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	require.Equal(t, "abc", string(data))
}

func TestDocumentName(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 9, 30, 5, 0, time.UTC)
	require.Equal(t, "clip_20240315_093005.docx", DocumentName("clip.mp3", now))
	require.Equal(t, "audio_20240315_093005.docx", DocumentName("", now))
}

func TestDocumentNameFromHiddenUploadIsSaveable(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	now := time.Date(2024, 3, 15, 9, 30, 5, 0, time.UTC)
	name := DocumentName(".foo.mp3", now)
	require.Equal(t, "foo_20240315_093005.docx", name)

	require.NoError(t, store.SaveDocument(name, []byte("doc")))

	f, err := store.Open(name)
	require.NoError(t, err)
	f.Close()
}

func TestSaveAndOpenDocument(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SaveDocument("out.docx", []byte("doc")))

	f, err := store.Open("out.docx")
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	require.Equal(t, int64(3), info.Size())
}

func TestOpenMissingFile(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open("nope.docx")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestOpenRejectsTraversal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "outputs"))
	require.NoError(t, err)

	secret := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("s"), 0o644))

	for _, name := range []string{"../secret.txt", ".hidden", "..", "a/b.docx"} {
		_, err := store.Open(name)
		require.Errorf(t, err, "name %q must be rejected", name)
	}
}
