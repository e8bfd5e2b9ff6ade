package narratives

import "errors"

var (
	// ErrUnknownDataset is returned when a dataset-and-split key is not in the registry.
	ErrUnknownDataset = errors.New("unknown dataset and split")

	// ErrDownload is returned when fetching an annotation file fails.
	ErrDownload = errors.New("annotation download failed")

	// ErrDecode is returned when an annotation line is not a valid narrative record.
	ErrDecode = errors.New("annotation decode failed")

	// ErrMalformedRecordingPath is returned when a voice recording path cannot be
	// rewritten for a dataset family that requires it.
	ErrMalformedRecordingPath = errors.New("malformed voice recording path")
)
