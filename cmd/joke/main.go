package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"joke-demo/internal/config"
	"joke-demo/internal/domain/entities"
	domainservices "joke-demo/internal/domain/services"
	"joke-demo/internal/domain/valueobjects"
	"joke-demo/internal/infrastructure/external"
	infraservices "joke-demo/internal/infrastructure/services"
	"joke-demo/internal/logging"
)

func main() {
	encodeOnly := flag.Bool("encode-only", false, "print the base64 payload instead of asking for a joke")
	dataURL := flag.Bool("data-url", false, "with -encode-only, print a data: URL instead of bare base64")
	model := flag.String("model", "", "Gemini model (defaults to GEMINI_MODEL)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-encode-only [-data-url]] [-model name] image\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	ctx := context.Background()

	// the whole file is read once and validated as an image
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	image, err := valueobjects.NewImageData(raw, "")
	if err != nil {
		log.Fatalf("%s: %s", path, entities.MsgUnsupportedImage)
	}

	encoded, err := domainservices.NewBase64Encoder().Encode(ctx, bytes.NewReader(raw))
	if err != nil {
		log.Fatalf("encode %s: %v", path, err)
	}

	if *encodeOnly {
		if *dataURL {
			encoded = domainservices.DataURL(image.MimeType(), encoded)
		}
		fmt.Println(encoded)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(cfg.SlogLevel())

	if strings.TrimSpace(*model) == "" {
		*model = cfg.Gemini.Model
	}

	clientPool := infraservices.NewGenAIClientPool(cfg.Gemini.APIKey, cfg.Gemini.BaseURL)
	defer clientPool.Close()

	jokes := domainservices.NewJokeDomainService(external.NewGeminiAIService(clientPool), *model)

	joke, err := jokes.GenerateJoke(ctx, encoded, image.MimeType())
	if err != nil {
		fmt.Fprintln(os.Stderr, entities.MsgGenerationFailed)
		os.Exit(1)
	}
	fmt.Println(joke)
}
