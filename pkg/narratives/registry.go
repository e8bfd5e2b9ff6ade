package narratives

import (
	"fmt"
	"sort"
	"strings"
)

// annotationFiles maps every known dataset-and-split key to the ordered list of
// annotation files published for it. open_images_train and coco_train are sharded.
var annotationFiles = map[string][]string{
	"open_images_train": shardedFiles("open_images_train_v6_localized_narratives-%05d-of-00010.jsonl", 10),
	"open_images_val":   {"open_images_validation_localized_narratives.jsonl"},
	"open_images_test":  {"open_images_test_localized_narratives.jsonl"},
	"coco_train":        shardedFiles("coco_train_localized_narratives-%05d-of-00004.jsonl", 4),
	"coco_val":          {"coco_val_localized_narratives.jsonl"},
	"flickr30k_train":   {"flickr30k_train_localized_narratives.jsonl"},
	"flickr30k_val":     {"flickr30k_val_localized_narratives.jsonl"},
	"flickr30k_test":    {"flickr30k_test_localized_narratives.jsonl"},
	"ade20k_train":      {"ade20k_train_localized_narratives.jsonl"},
	"ade20k_val":        {"ade20k_validation_localized_narratives.jsonl"},
}

func shardedFiles(pattern string, count int) []string {
	files := make([]string, 0, count)
	for i := 0; i < count; i++ {
		files = append(files, fmt.Sprintf(pattern, i))
	}

	return files
}

// AnnotationFiles returns the expected annotation filenames for a dataset-and-split
// key, in shard order. The returned slice is a copy.
func AnnotationFiles(datasetAndSplit string) ([]string, error) {
	files, ok := annotationFiles[datasetAndSplit]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, datasetAndSplit)
	}

	return append([]string(nil), files...), nil
}

// DatasetAndSplits returns every known dataset-and-split key, sorted.
func DatasetAndSplits() []string {
	keys := make([]string, 0, len(annotationFiles))
	for key := range annotationFiles {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

const (
	FamilyUnknown Family = iota
	FamilyOpenImages
	FamilyCOCO
	FamilyFlickr30k
	FamilyADE20k
)

// Family identifies which dataset a narrative's dataset_id belongs to. Flickr30k and
// ADE20k store their voice recordings under reconstructed names, the others store the
// path verbatim.
type Family int

func (f Family) String() string {
	switch f {
	case FamilyOpenImages:
		return "open_images"
	case FamilyCOCO:
		return "coco"
	case FamilyFlickr30k:
		return "flickr30k"
	case FamilyADE20k:
		return "ade20k"
	default:
		return "unknown"
	}
}

// RewritesRecordingPath reports whether the family's stored voice_recording value must
// be rewritten before it can be resolved against the recordings root.
func (f Family) RewritesRecordingPath() bool {
	return f == FamilyFlickr30k || f == FamilyADE20k
}

// FamilyOf detects the dataset family from a record's dataset_id. The markers match
// anywhere in the id, same as the upstream dataset tooling.
func FamilyOf(datasetID string) Family {
	switch {
	case strings.Contains(datasetID, "Flic"):
		return FamilyFlickr30k
	case strings.Contains(datasetID, "ADE"):
		return FamilyADE20k
	case strings.Contains(datasetID, "mscoco"):
		return FamilyCOCO
	case strings.Contains(datasetID, "open_images"):
		return FamilyOpenImages
	default:
		return FamilyUnknown
	}
}
