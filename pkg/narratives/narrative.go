package narratives

import (
	"encoding/json"
	"fmt"
)

// TimedPoint is a single mouse trace position with its timestamp.
type TimedPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T float64 `json:"t"`
}

// TimedUtterance is a caption fragment aligned to the voice recording.
type TimedUtterance struct {
	Utterance string  `json:"utterance"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// LocalizedNarrative is one annotation: an image paired with a spoken description,
// its time-aligned transcript and the synchronized mouse traces.
// Field documentation lives at
// https://google.github.io/localized-narratives/index.html?file-formats=1
type LocalizedNarrative struct {
	DatasetID      string           `json:"dataset_id"`
	ImageID        string           `json:"image_id"`
	AnnotatorID    int              `json:"annotator_id"`
	Caption        string           `json:"caption"`
	TimedCaption   []TimedUtterance `json:"timed_caption"`
	Traces         [][]TimedPoint   `json:"traces"`
	VoiceRecording string           `json:"voice_recording"`
}

var narrativeFields = map[string]bool{
	"dataset_id":      true,
	"image_id":        true,
	"annotator_id":    true,
	"caption":         true,
	"timed_caption":   true,
	"traces":          true,
	"voice_recording": true,
}

// decodeNarrative parses one annotation line. Every field of the record must be
// present in the line and no unknown keys are accepted, so a schema drift upstream
// fails loudly instead of producing half-empty records.
func decodeNarrative(line []byte) (*LocalizedNarrative, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	for field := range narrativeFields {
		if _, ok := raw[field]; !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrDecode, field)
		}
	}

	for key := range raw {
		if !narrativeFields[key] {
			return nil, fmt.Errorf("%w: unknown field %q", ErrDecode, key)
		}
	}

	var narrative LocalizedNarrative
	if err := json.Unmarshal(line, &narrative); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &narrative, nil
}

// Family returns the dataset family the narrative belongs to.
func (ln *LocalizedNarrative) Family() Family {
	return FamilyOf(ln.DatasetID)
}

func (ln *LocalizedNarrative) String() string {
	caption := ln.Caption
	if len(caption) > 63 {
		caption = caption[:60] + "..."
	}

	timedCaption := "[]"
	if len(ln.TimedCaption) > 0 {
		timedCaption = fmt.Sprintf("[%+v, ...]", ln.TimedCaption[0])
	}

	traces := "[]"
	if len(ln.Traces) > 0 && len(ln.Traces[0]) > 0 {
		traces = fmt.Sprintf("[[%+v, ...], ...]", ln.Traces[0][0])
	}

	return fmt.Sprintf("{\n dataset_id: %s,\n image_id: %s,\n annotator_id: %d,\n caption: %s,\n timed_caption: %s,\n traces: %s,\n voice_recording: %s\n}",
		ln.DatasetID, ln.ImageID, ln.AnnotatorID, caption, timedCaption, traces, ln.VoiceRecording)
}
