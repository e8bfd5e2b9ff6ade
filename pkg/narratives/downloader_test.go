package narratives_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"locnarr/pkg/narratives"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestDownloadAnnotations(t *testing.T) {
	t.Parallel()

	assert := require.New(t)

	var requests atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		assert.Equal("/flickr30k_test_localized_narratives.jsonl", r.URL.Path)

		_, _ = w.Write([]byte(narrativeLine("137576")))
	}))
	defer srv.Close()

	localDir := filepath.Join(t.TempDir(), "annotations")

	loader := narratives.New(srv.Client(), testLogger(), &narratives.Config{
		LocalDir:       localDir,
		AnnotationsURL: srv.URL,
	})

	err := loader.DownloadAnnotations(context.Background(), "flickr30k_test")
	assert.NoError(err)
	assert.EqualValues(1, requests.Load())

	content, err := os.ReadFile(filepath.Join(localDir, "flickr30k_test_localized_narratives.jsonl"))
	assert.NoError(err)
	assert.Equal(narrativeLine("137576"), string(content))

	// second run finds everything present and performs zero downloads
	err = loader.DownloadAnnotations(context.Background(), "flickr30k_test")
	assert.NoError(err)
	assert.EqualValues(1, requests.Load())
}

func TestDownloadAnnotationsUnknownKeyBeforeIO(t *testing.T) {
	t.Parallel()

	assert := require.New(t)

	var requests atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	localDir := filepath.Join(t.TempDir(), "annotations")

	loader := narratives.New(srv.Client(), testLogger(), &narratives.Config{
		LocalDir:       localDir,
		AnnotationsURL: srv.URL,
	})

	err := loader.DownloadAnnotations(context.Background(), "no_such_dataset")
	assert.ErrorIs(err, narratives.ErrUnknownDataset)
	assert.EqualValues(0, requests.Load())

	_, err = os.Stat(localDir)
	assert.True(os.IsNotExist(err))
}

func TestDownloadAnnotationsAbortsBatchOnFailure(t *testing.T) {
	t.Parallel()

	assert := require.New(t)

	var requests atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	loader := narratives.New(srv.Client(), testLogger(), &narratives.Config{
		LocalDir:       t.TempDir(),
		AnnotationsURL: srv.URL,
	})

	// coco_train has four shards; the first failure must stop the batch
	err := loader.DownloadAnnotations(context.Background(), "coco_train")
	assert.ErrorIs(err, narratives.ErrDownload)
	assert.EqualValues(1, requests.Load())
}

func TestDownloadAnnotationsRemovesPartialFile(t *testing.T) {
	t.Parallel()

	assert := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000000")
		_, _ = w.Write([]byte("partial"))
	}))
	defer srv.Close()

	localDir := t.TempDir()

	loader := narratives.New(srv.Client(), testLogger(), &narratives.Config{
		LocalDir:       localDir,
		AnnotationsURL: srv.URL,
	})

	err := loader.DownloadAnnotations(context.Background(), "flickr30k_test")
	assert.ErrorIs(err, narratives.ErrDownload)

	// a truncated file left behind would count as downloaded on the next run
	_, err = os.Stat(filepath.Join(localDir, "flickr30k_test_localized_narratives.jsonl"))
	assert.True(os.IsNotExist(err))
}

func TestAnnotationStatus(t *testing.T) {
	t.Parallel()

	assert := require.New(t)

	localDir := t.TempDir()

	loader := narratives.New(http.DefaultClient, testLogger(), &narratives.Config{
		LocalDir: localDir,
	})

	statuses, err := loader.AnnotationStatus("coco_train")
	assert.NoError(err)
	assert.Len(statuses, 4)
	for _, status := range statuses {
		assert.False(status.Present)
	}

	err = os.WriteFile(filepath.Join(localDir, statuses[1].Name), []byte(narrativeLine("1")), 0644)
	assert.NoError(err)

	statuses, err = loader.AnnotationStatus("coco_train")
	assert.NoError(err)
	assert.False(statuses[0].Present)
	assert.True(statuses[1].Present)

	_, err = loader.AnnotationStatus("no_such_dataset")
	assert.ErrorIs(err, narratives.ErrUnknownDataset)
}
