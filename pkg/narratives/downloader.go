package narratives

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"locnarr/pkg/tools"
)

const rootURL = "https://storage.googleapis.com/localized-narratives"

const (
	DefaultAnnotationsURL = rootURL + "/annotations"
	DefaultRecordingsURL  = rootURL + "/voice-recordings"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	// LocalDir is where annotation files are downloaded to and read from.
	LocalDir string `yaml:"local_dir"`

	AnnotationsURL string `yaml:"annotations_url"`
	RecordingsURL  string `yaml:"recordings_url"`
}

func (cfg *Config) annotationsURL() string {
	if cfg.AnnotationsURL == "" {
		return DefaultAnnotationsURL
	}
	return cfg.AnnotationsURL
}

func (cfg *Config) recordingsURL() string {
	if cfg.RecordingsURL == "" {
		return DefaultRecordingsURL
	}
	return cfg.RecordingsURL
}

// Loader downloads Localized Narratives annotation files into a local directory and
// reads them back as typed records.
type Loader struct {
	httpClient HTTPClient
	logger     *slog.Logger
	cfg        *Config
}

func New(httpClient HTTPClient, logger *slog.Logger, cfg *Config) *Loader {
	return &Loader{
		httpClient: httpClient,
		logger:     logger,
		cfg:        cfg,
	}
}

// DownloadAnnotations fetches every annotation file of a dataset-and-split that is
// not already present in the local directory. A file that exists locally is never
// re-downloaded or re-validated. The first failed download aborts the batch.
func (l *Loader) DownloadAnnotations(ctx context.Context, datasetAndSplit string) error {
	files, err := AnnotationFiles(datasetAndSplit)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(l.cfg.LocalDir, 0755); err != nil {
		return fmt.Errorf("failed to create local dir: %w", err)
	}

	for _, filename := range files {
		if err := l.downloadOne(ctx, filename); err != nil {
			return err
		}
	}

	return nil
}

func (l *Loader) downloadOne(ctx context.Context, filename string) error {
	localPath := l.localFile(filename)

	if _, err := os.Stat(localPath); err == nil {
		l.logger.Info("already downloaded", "file", filename)
		metrics.DownloadsSkipped.Inc()

		return nil
	}

	l.logger.Info("downloading", "file", filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.annotationsURL()+"/"+filename, nil)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDownload, filename, err)
	}
	defer tools.DrainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: %s", ErrDownload, filename, resp.Status)
	}

	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", localPath, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		// a truncated file would pass the presence check next time
		_ = os.Remove(localPath)

		return fmt.Errorf("%w: %s: %v", ErrDownload, filename, err)
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(localPath)

		return fmt.Errorf("failed to close %s: %w", localPath, err)
	}

	metrics.FilesDownloaded.Inc()

	return nil
}

type FileStatus struct {
	Name    string `json:"name"`
	Present bool   `json:"present"`
}

// AnnotationStatus reports, per expected annotation file of a dataset-and-split,
// whether it is present in the local directory.
func (l *Loader) AnnotationStatus(datasetAndSplit string) ([]FileStatus, error) {
	files, err := AnnotationFiles(datasetAndSplit)
	if err != nil {
		return nil, err
	}

	statuses := make([]FileStatus, 0, len(files))
	for _, filename := range files {
		_, err := os.Stat(l.localFile(filename))
		statuses = append(statuses, FileStatus{
			Name:    filename,
			Present: err == nil,
		})
	}

	return statuses, nil
}

// RecordingURL resolves the absolute voice recording URL of a narrative against the
// configured recordings root.
func (l *Loader) RecordingURL(ln *LocalizedNarrative) (string, error) {
	return ln.VoiceRecordingURL(l.cfg.recordingsURL())
}

func (l *Loader) localFile(filename string) string {
	return filepath.Join(l.cfg.LocalDir, filename)
}
