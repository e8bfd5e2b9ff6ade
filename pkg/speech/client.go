package speech

import (
	"context"
	"fmt"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

type Config struct {
	// CredentialsFile overrides GOOGLE_APPLICATION_CREDENTIALS when set.
	CredentialsFile string `yaml:"credentials_file"`

	LanguageCode      string        `yaml:"language_code"`
	SampleRateHertz   int32         `yaml:"sample_rate_hertz"`
	AudioChannelCount int32         `yaml:"audio_channel_count"`
	MaxAlternatives   int32         `yaml:"max_alternatives"`
	OperationTimeout  time.Duration `yaml:"operation_timeout"`
}

func (cfg *Config) withDefaults() *Config {
	out := *cfg
	if out.LanguageCode == "" {
		out.LanguageCode = "en-IN"
	}
	if out.SampleRateHertz == 0 {
		out.SampleRateHertz = 48000
	}
	if out.AudioChannelCount == 0 {
		out.AudioChannelCount = 2
	}
	if out.MaxAlternatives == 0 {
		out.MaxAlternatives = 10
	}
	if out.OperationTimeout == 0 {
		out.OperationTimeout = 90 * time.Second
	}
	return &out
}

// Client wraps Google Cloud Speech-to-Text for transcribing Localized Narratives
// voice recordings. Recordings must be re-encoded to Ogg Opus first.
type Client struct {
	speechClient *speech.Client
	cfg          *Config
}

func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	speechClient, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	return &Client{
		speechClient: speechClient,
		cfg:          cfg.withDefaults(),
	}, nil
}

func (c *Client) Close() error {
	return c.speechClient.Close()
}

// Transcribe sends the recording content through long-running recognition and waits
// for the result. Content-based recognition is limited to recordings of up to 60
// seconds; longer ones have to go through a GCS URI instead, which this client does
// not do.
func (c *Client) Transcribe(ctx context.Context, content []byte) (*speechpb.LongRunningRecognizeResponse, error) {
	req := &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:              speechpb.RecognitionConfig_OGG_OPUS,
			SampleRateHertz:       c.cfg.SampleRateHertz,
			AudioChannelCount:     c.cfg.AudioChannelCount,
			MaxAlternatives:       c.cfg.MaxAlternatives,
			EnableWordTimeOffsets: true,
			LanguageCode:          c.cfg.LanguageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: content},
		},
	}

	op, err := c.speechClient.LongRunningRecognize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to start recognition: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, c.cfg.OperationTimeout)
	defer cancel()

	resp, err := op.Wait(waitCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for recognition result: %w", err)
	}

	return resp, nil
}
