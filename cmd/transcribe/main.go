// Transcribes a Localized Narratives voice recording with Google's speech-to-text
// API. The recordings were released as Ogg Vorbis, which the API does not accept,
// so the audio is first re-encoded to Opus with ffmpeg.
//
// Authentication follows https://cloud.google.com/docs/authentication/getting-started
// (GOOGLE_APPLICATION_CREDENTIALS, or speech.credentials_file in the config).
//
// Content-based recognition is limited to 60 seconds of audio. Longer recordings
// have to be uploaded to a GCS bucket and recognized by URI, which this command
// does not do.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"locnarr/cfg"
	"locnarr/pkg/ffmpeg"
	"locnarr/pkg/speech"

	"gopkg.in/yaml.v3"
)

func main() {
	var (
		cfgPath   string
		inputPath string
	)
	flag.StringVar(&cfgPath, "cfg-path", "", "path to config file (optional)")
	flag.StringVar(&inputPath, "input", "", "path to an Ogg Vorbis voice recording")
	flag.Parse()

	if inputPath == "" {
		log.Fatal("-input is required")
	}

	config := &cfg.Config{}
	if cfgPath != "" {
		cfgFile, err := os.ReadFile(cfgPath)
		if err != nil {
			log.Fatalf("can't open %s file: %v", cfgPath, err)
		}
		if err := yaml.Unmarshal(cfgFile, config); err != nil {
			log.Fatal("can't unmarshal cfg file", err)
		}
	}

	ctx := context.Background()

	ffmpegClient := ffmpeg.New(&config.Ffmpeg)

	probe, err := ffmpegClient.FfprobePath(ctx, inputPath)
	if err != nil {
		log.Fatal("failed to probe recording: ", err)
	}

	if probe.Duration > time.Minute {
		log.Printf("recording is %v long; content-based recognition is limited to 60s, expect a truncated result", probe.Duration)
	}

	opus, err := ffmpegClient.OggVorbis2OpusPath(ctx, inputPath)
	if err != nil {
		log.Fatal("failed to re-encode recording: ", err)
	}

	extension := filepath.Ext(inputPath)
	outputPath := strings.TrimSuffix(inputPath, extension) + "_opus" + extension
	if err := os.WriteFile(outputPath, opus, 0644); err != nil {
		log.Fatal("failed to save re-encoded recording: ", err)
	}
	log.Print("saved re-encoded recording to ", outputPath)

	speechClient, err := speech.NewClient(ctx, &config.Speech)
	if err != nil {
		log.Fatal("failed to create speech client: ", err)
	}
	defer speechClient.Close()

	resp, err := speechClient.Transcribe(ctx, opus)
	if err != nil {
		log.Fatal("failed to transcribe recording: ", err)
	}

	for _, result := range resp.Results {
		for _, alternative := range result.Alternatives {
			fmt.Printf("%.3f\t%s\n", alternative.Confidence, alternative.Transcript)

			for _, word := range alternative.Words {
				fmt.Printf("\t%v - %v\t%s\n", word.StartTime.AsDuration(), word.EndTime.AsDuration(), word.Word)
			}
		}
	}
}
