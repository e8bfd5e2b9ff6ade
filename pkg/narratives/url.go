package narratives

import (
	"fmt"
	"regexp"
	"strings"
)

// recordingPathPattern extracts the split id and the numeric image id from a stored
// voice_recording value, e.g. "valid/coco_val_000137576_93.jpg". Unanchored on
// purpose, matching the upstream tooling.
var recordingPathPattern = regexp.MustCompile(`(\w+)/\w+_([0-9]+)_[0-9]+\.`)

// VoiceRecordingURL resolves the absolute URL of the narrative's voice recording
// under the given recordings root. Flickr30k and ADE20k recordings were renamed on
// release, so for those families the stored path is reconstructed as
// <split>/<split>_<image id zero-padded to 16>_<annotator id>.ogg; every other
// family stores the path verbatim.
func (ln *LocalizedNarrative) VoiceRecordingURL(recordingsURL string) (string, error) {
	recording := ln.VoiceRecording

	if ln.Family().RewritesRecordingPath() {
		groups := recordingPathPattern.FindStringSubmatch(recording)
		if groups == nil {
			return "", fmt.Errorf("%w: %q", ErrMalformedRecordingPath, recording)
		}

		splitID, imageID := groups[1], groups[2]
		if len(imageID) < 16 {
			imageID = strings.Repeat("0", 16-len(imageID)) + imageID
		}

		recording = fmt.Sprintf("%s/%s_%s_%d.ogg", splitID, splitID, imageID, ln.AnnotatorID)
	}

	return recordingsURL + "/" + recording, nil
}
