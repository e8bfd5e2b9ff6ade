package narratives

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Reader is a single-pass cursor over the locally present annotation files of one
// dataset-and-split, in shard order. It holds at most one open file at a time and
// releases it on every exit path, including decode errors.
type Reader struct {
	files     []string // local paths not yet opened
	file      *os.File
	scanner   *bufio.Scanner
	line      int
	remaining int // records left to emit, -1 when unbounded
	done      bool
}

// Open validates the dataset-and-split key and returns a cursor over the annotation
// files currently present in the local directory. Files listed in the registry but
// not downloaded yet are skipped, so a partially downloaded dataset is readable.
// maxNarratives caps the total number of records emitted; zero or negative means
// unbounded.
func (l *Loader) Open(datasetAndSplit string, maxNarratives int) (*Reader, error) {
	files, err := AnnotationFiles(datasetAndSplit)
	if err != nil {
		return nil, err
	}

	present := make([]string, 0, len(files))
	for _, filename := range files {
		localPath := l.localFile(filename)
		if _, err := os.Stat(localPath); err == nil {
			present = append(present, localPath)
		}
	}

	remaining := maxNarratives
	if remaining <= 0 {
		remaining = -1
	}

	return &Reader{
		files:     present,
		remaining: remaining,
	}, nil
}

// Load drains a Reader into a slice. Meant for bounded reads; prefer Open for
// iterating large splits.
func (l *Loader) Load(datasetAndSplit string, maxNarratives int) ([]*LocalizedNarrative, error) {
	reader, err := l.Open(datasetAndSplit, maxNarratives)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var loaded []*LocalizedNarrative
	for {
		narrative, err := reader.Next()
		if err == io.EOF {
			return loaded, nil
		}
		if err != nil {
			return nil, err
		}

		loaded = append(loaded, narrative)
	}
}

// Next returns the next narrative in file-then-line order, or io.EOF once the files
// are exhausted or the record cap is reached. After any non-nil error the reader is
// closed and stays closed.
func (r *Reader) Next() (*LocalizedNarrative, error) {
	if r.done {
		return nil, io.EOF
	}

	for {
		if r.scanner == nil {
			if len(r.files) == 0 {
				_ = r.Close()
				return nil, io.EOF
			}

			file, err := os.Open(r.files[0])
			r.files = r.files[1:]
			if err != nil {
				_ = r.Close()
				return nil, fmt.Errorf("failed to open annotation file: %w", err)
			}

			r.file = file
			r.scanner = bufio.NewScanner(file)
			// single records run well past the default 64KiB token limit
			r.scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
			r.line = 0
		}

		if !r.scanner.Scan() {
			err := r.scanner.Err()
			name := r.file.Name()
			_ = r.file.Close()
			r.file = nil
			r.scanner = nil

			if err != nil {
				_ = r.Close()
				return nil, fmt.Errorf("failed to read %s: %w", name, err)
			}

			continue
		}

		r.line++

		narrative, err := decodeNarrative(r.scanner.Bytes())
		if err != nil {
			name := r.file.Name()
			line := r.line
			_ = r.Close()
			metrics.DecodeFailures.Inc()

			return nil, fmt.Errorf("%s line %d: %w", name, line, err)
		}

		if r.remaining > 0 {
			r.remaining--
			if r.remaining == 0 {
				// cap reached, release the handle right away
				_ = r.Close()
			}
		}

		metrics.NarrativesDecoded.Inc()

		return narrative, nil
	}
}

// Close releases the currently open file, if any. Safe to call more than once.
func (r *Reader) Close() error {
	r.done = true
	r.files = nil
	r.scanner = nil

	if r.file == nil {
		return nil
	}

	file := r.file
	r.file = nil

	return file.Close()
}
