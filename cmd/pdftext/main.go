// Command pdftext extracts text and (optionally) image metadata from a
// PDF file, printing the result as JSON.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/AOShei/go-fast-pdf/pkg/loader"
)

func main() {
	concurrent := flag.Bool("concurrent", false, "Enable concurrent page processing")
	workers := flag.Int("workers", 0, "Number of worker threads (0 = auto-detect, default: NumCPU)")
	extractImages := flag.Bool("images", false, "Extract image metadata (width, height, position) from pages")
	verbose := flag.Bool("v", false, "Enable debug logging to stderr")
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if flag.NArg() < 1 {
		log.Fatal("Usage: pdftext [--concurrent] [--workers N] [--images] [-v] <path_to_pdf>")
	}

	path := flag.Arg(0)

	var err error
	var doc any

	if *concurrent {
		doc, err = loader.LoadPDFConcurrent(path, *workers, *extractImages)
	} else {
		doc, err = loader.LoadPDF(path, *extractImages)
	}
	if err != nil {
		log.Fatalf("failed to load pdf: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(doc); err != nil {
		log.Fatalf("failed to encode json: %v", err)
	}
}
