package narratives

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleLine = `{
	"dataset_id": "mscoco_val2017",
	"image_id": "137576",
	"annotator_id": 93,
	"caption": "In this image there is a table.",
	"timed_caption": [{"utterance": "In this image", "start_time": 0.0, "end_time": 1.2}],
	"traces": [[{"x": 0.53, "y": 0.62, "t": 0.1}, {"x": 0.54, "y": 0.63, "t": 0.2}]],
	"voice_recording": "coco_val/coco_val_137576_93.ogg"
}`

func compactLine(t *testing.T, line string) []byte {
	t.Helper()

	return []byte(strings.ReplaceAll(strings.ReplaceAll(line, "\n", ""), "\t", ""))
}

func TestDecodeNarrative(t *testing.T) {
	t.Parallel()

	assert := require.New(t)

	narrative, err := decodeNarrative(compactLine(t, sampleLine))
	assert.NoError(err)

	assert.Equal("mscoco_val2017", narrative.DatasetID)
	assert.Equal("137576", narrative.ImageID)
	assert.Equal(93, narrative.AnnotatorID)
	assert.Equal("In this image there is a table.", narrative.Caption)
	assert.Equal([]TimedUtterance{{Utterance: "In this image", StartTime: 0, EndTime: 1.2}}, narrative.TimedCaption)
	assert.Len(narrative.Traces, 1)
	assert.Equal(TimedPoint{X: 0.53, Y: 0.62, T: 0.1}, narrative.Traces[0][0])
	assert.Equal("coco_val/coco_val_137576_93.ogg", narrative.VoiceRecording)
}

func TestDecodeNarrativeMissingField(t *testing.T) {
	t.Parallel()

	assert := require.New(t)

	withoutTraces := strings.Replace(sampleLine, `"traces": [[{"x": 0.53, "y": 0.62, "t": 0.1}, {"x": 0.54, "y": 0.63, "t": 0.2}]],`, "", 1)

	_, err := decodeNarrative(compactLine(t, withoutTraces))
	assert.ErrorIs(err, ErrDecode)
	assert.Contains(err.Error(), "traces")
}

func TestDecodeNarrativeUnknownField(t *testing.T) {
	t.Parallel()

	assert := require.New(t)

	withExtra := strings.Replace(sampleLine, `"dataset_id"`, `"extra_field": 1, "dataset_id"`, 1)

	_, err := decodeNarrative(compactLine(t, withExtra))
	assert.ErrorIs(err, ErrDecode)
	assert.Contains(err.Error(), "extra_field")
}

func TestDecodeNarrativeMalformedJSON(t *testing.T) {
	t.Parallel()

	assert := require.New(t)

	_, err := decodeNarrative([]byte(`{"dataset_id": `))
	assert.ErrorIs(err, ErrDecode)
}

func TestNarrativeStringTruncatesCaption(t *testing.T) {
	t.Parallel()

	assert := require.New(t)

	narrative, err := decodeNarrative(compactLine(t, sampleLine))
	assert.NoError(err)

	narrative.Caption = strings.Repeat("a", 100)

	printed := narrative.String()
	assert.Contains(printed, strings.Repeat("a", 60)+"...")
	assert.NotContains(printed, strings.Repeat("a", 61))
}
