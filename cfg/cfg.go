package cfg

import (
	"locnarr/internal/app/api"
	"locnarr/pkg/ffmpeg"
	"locnarr/pkg/narratives"
	"locnarr/pkg/speech"
)

type Config struct {
	Api api.Config `yaml:"api"`

	Narratives narratives.Config `yaml:"narratives"`

	Ffmpeg ffmpeg.Config `yaml:"ffmpeg"`
	Speech speech.Config `yaml:"speech"`
}
