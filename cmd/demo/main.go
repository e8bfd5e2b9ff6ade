package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"locnarr/pkg/narratives"
)

func main() {
	var (
		localDir        string
		datasetAndSplit string
	)
	flag.StringVar(&localDir, "local-dir", "datasets/LocalizedNarratives", "directory to download annotation files to and read them from")
	flag.StringVar(&datasetAndSplit, "dataset", "flickr30k_test", "dataset and split to load")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	loader := narratives.New(&http.Client{}, logger, &narratives.Config{
		LocalDir: localDir,
	})

	// downloads the annotation files, skipping the ones already present
	if err := loader.DownloadAnnotations(context.Background(), datasetAndSplit); err != nil {
		log.Fatal("failed to download annotations: ", err)
	}

	// reads one annotation from whatever files are present locally; for a sharded
	// split like open_images_train this works even with a single shard downloaded
	loaded, err := loader.Load(datasetAndSplit, 1)
	if err != nil {
		log.Fatal("failed to load annotations: ", err)
	}

	if len(loaded) == 0 {
		log.Fatal("no annotations found in ", localDir)
	}

	narrative := loaded[0]

	fmt.Printf("\nLocalized Narrative sample:\n%s\n", narrative)

	url, err := loader.RecordingURL(narrative)
	if err != nil {
		log.Fatal("failed to resolve voice recording url: ", err)
	}

	fmt.Printf("\nVoice recording URL:\n %s\n", url)
}
