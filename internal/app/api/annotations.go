package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"locnarr/pkg/narratives"

	"github.com/go-chi/chi/v5"
)

type Loader interface {
	DownloadAnnotations(ctx context.Context, datasetAndSplit string) error
	AnnotationStatus(datasetAndSplit string) ([]narratives.FileStatus, error)
	Open(datasetAndSplit string, maxNarratives int) (*narratives.Reader, error)
	RecordingURL(ln *narratives.LocalizedNarrative) (string, error)
}

type datasetEntry struct {
	DatasetAndSplit string                  `json:"dataset_and_split"`
	Files           []narratives.FileStatus `json:"files"`
}

func (api *API) datasets(w http.ResponseWriter, r *http.Request) {
	keys := narratives.DatasetAndSplits()

	entries := make([]datasetEntry, 0, len(keys))
	for _, key := range keys {
		files, err := api.loader.AnnotationStatus(key)
		if err != nil {
			api.logger.Error("failed to get annotation status", "dataset", key, "err", err)
			http.Error(w, "failed to list datasets", http.StatusInternalServerError)

			return
		}

		entries = append(entries, datasetEntry{
			DatasetAndSplit: key,
			Files:           files,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

func (api *API) download(w http.ResponseWriter, r *http.Request) {
	dataset := chi.URLParam(r, "dataset")

	if err := api.loader.DownloadAnnotations(r.Context(), dataset); err != nil {
		if errors.Is(err, narratives.ErrUnknownDataset) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}

		api.logger.Error("download failed", "dataset", dataset, "err", err)
		http.Error(w, "download failed", http.StatusBadGateway)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type annotationEntry struct {
	*narratives.LocalizedNarrative
	VoiceRecordingURL string `json:"voice_recording_url,omitempty"`
}

func (api *API) annotations(w http.ResponseWriter, r *http.Request) {
	dataset := chi.URLParam(r, "dataset")

	maxNarratives := 0
	if raw := r.URL.Query().Get("max"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "max must be an integer", http.StatusBadRequest)

			return
		}
		maxNarratives = parsed
	}

	reader, err := api.loader.Open(dataset, maxNarratives)
	if err != nil {
		if errors.Is(err, narratives.ErrUnknownDataset) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}

		api.logger.Error("failed to open annotations", "dataset", dataset, "err", err)
		http.Error(w, "failed to open annotations", http.StatusInternalServerError)

		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/x-ndjson")

	encoder := json.NewEncoder(w)
	for {
		narrative, err := reader.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			// status is already committed, all we can do is cut the stream
			api.logger.Error("failed to read annotations", "dataset", dataset, "err", err)

			return
		}

		entry := annotationEntry{LocalizedNarrative: narrative}
		if url, err := api.loader.RecordingURL(narrative); err == nil {
			entry.VoiceRecordingURL = url
		} else {
			api.logger.Warn("failed to resolve recording url", "dataset", dataset, "image_id", narrative.ImageID, "err", err)
		}

		if err := encoder.Encode(entry); err != nil {
			return
		}
	}
}
