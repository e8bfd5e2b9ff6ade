package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path"

	"github.com/google/uuid"
)

// OggVorbis2OpusPath re-encodes an Ogg Vorbis recording as Ogg Opus. The voice
// recordings are released in Vorbis, which the speech-to-text API does not accept.
func (c *Client) OggVorbis2OpusPath(ctx context.Context, inputPath string) ([]byte, error) {
	outputPath := path.Join(c.tmpDir(), prefix+uuid.NewString())

	defer os.Remove(outputPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", "-i", inputPath, "-nostats", "-loglevel", "0", "-c:a", "libopus", "-f", "ogg", outputPath)

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to run ffmpeg: %w", err)
	}

	output, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}

	return output, nil
}

func (c *Client) OggVorbis2Opus(ctx context.Context, data []byte) ([]byte, error) {
	path := path.Join(c.tmpDir(), prefix+uuid.NewString())

	err := os.WriteFile(path, data, 0644)
	if err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	defer os.Remove(path)

	return c.OggVorbis2OpusPath(ctx, path)
}
