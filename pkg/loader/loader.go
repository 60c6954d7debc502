package loader

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/AOShei/go-fast-pdf/pkg/model"
	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

// pageResult holds the result of processing a single page.
type pageResult struct {
	pageNum int
	page    model.Page
	err     error
}

// LoadPDF takes a file path and returns the structured Document,
// interpreting every page's content stream through a textDevice built
// on top of the Driver surface.
func LoadPDF(path string, extractImages bool) (*model.Document, error) {
	doc, err := Open(path, "")
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	meta := metadataOf(doc)
	if meta.Encrypted {
		slog.Warn("pdf is encrypted, attempting empty-password decryption")
	}

	numPages := doc.TotalPages()
	slog.Info("processing pages", "count", numPages)

	result := &model.Document{Metadata: meta, Pages: make([]model.Page, 0, numPages)}
	for i := 0; i < numPages; i++ {
		start := time.Now()
		page, err := extractPage(doc, i, extractImages)
		if err != nil {
			slog.Warn("error extracting page", "page", i+1, "error", err)
			continue
		}
		result.Pages = append(result.Pages, page)
		slog.Debug("page processed", "page", i+1, "elapsed", time.Since(start), "chars", page.CharCount)
	}
	return result, nil
}

// LoadPDFConcurrent loads a PDF and extracts text using concurrent page
// processing. workers specifies the worker-pool size (0 = NumCPU).
func LoadPDFConcurrent(path string, workers int, extractImages bool) (*model.Document, error) {
	probe, err := Open(path, "")
	if err != nil {
		return nil, err
	}
	meta := metadataOf(probe)
	numPages := probe.TotalPages()
	probe.Close()

	if meta.Encrypted {
		slog.Warn("pdf is encrypted, attempting empty-password decryption")
	}
	slog.Info("processing pages concurrently", "count", numPages)

	return loadPDFParallel(path, meta, numPages, workers, extractImages)
}

func metadataOf(doc *Document) model.Metadata {
	meta := model.Metadata{Encrypted: doc.reader.IsEncrypted()}
	if meta.Encrypted {
		return meta
	}
	info, err := doc.reader.GetInfo()
	if err != nil || info == nil {
		return meta
	}
	if t, ok := info["/Title"].(pdf.StringObject); ok {
		meta.Title = string(t)
	}
	if a, ok := info["/Author"].(pdf.StringObject); ok {
		meta.Author = string(a)
	}
	if c, ok := info["/Creator"].(pdf.StringObject); ok {
		meta.Creator = string(c)
	}
	if p, ok := info["/Producer"].(pdf.StringObject); ok {
		meta.Producer = string(p)
	}
	return meta
}

// extractPage interprets the ith page through a fresh textDevice and
// assembles the JSON-facing model.Page.
func extractPage(doc *Document, i int, extractImages bool) (model.Page, error) {
	page, err := doc.GetPage(i)
	if err != nil {
		return model.Page{}, err
	}

	dev := newTextDevice(extractImages)
	if err := doc.InterpretPage(i, dev); err != nil {
		return model.Page{}, err
	}

	out := model.Page{
		PageNumber: i + 1,
		Content:    dev.Text(),
		CharCount:  len(dev.Text()),
		Width:      page.Width(),
		Height:     page.Height(),
	}
	if extractImages {
		imgs := dev.images
		out.Images = &imgs
	}
	return out, nil
}

// loadPDFParallel implements the worker-pool pattern for concurrent
// page extraction: each worker opens its own *Document (its own file
// handle and Reader) so pages can be decoded in parallel without
// sharing the single-threaded bufio.Reader underneath a Lexer.
func loadPDFParallel(path string, meta model.Metadata, numPages int, workers int, extractImages bool) (*model.Document, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > numPages && numPages > 0 {
		workers = numPages
	}
	if workers <= 0 {
		workers = 1
	}

	pageIndices := make(chan int, numPages)
	results := make(chan pageResult, numPages)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			doc, err := Open(path, "")
			if err != nil {
				for idx := range pageIndices {
					results <- pageResult{pageNum: idx, err: err}
				}
				return
			}
			defer doc.Close()

			for idx := range pageIndices {
				start := time.Now()
				page, err := extractPage(doc, idx, extractImages)
				if err != nil {
					results <- pageResult{pageNum: idx, err: fmt.Errorf("page %d: %w", idx+1, err)}
					continue
				}
				results <- pageResult{pageNum: idx, page: page}
				slog.Debug("page processed", "page", idx+1, "elapsed", time.Since(start))
			}
		}()
	}

	go func() {
		for i := 0; i < numPages; i++ {
			pageIndices <- i
		}
		close(pageIndices)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	pages := make([]model.Page, numPages)
	seen := make([]bool, numPages)
	for result := range results {
		if result.err != nil {
			slog.Warn("error processing page", "page", result.pageNum+1, "error", result.err)
			continue
		}
		pages[result.pageNum] = result.page
		seen[result.pageNum] = true
	}

	validPages := make([]model.Page, 0, numPages)
	for i, ok := range seen {
		if ok {
			validPages = append(validPages, pages[i])
		}
	}

	return &model.Document{Metadata: meta, Pages: validPages}, nil
}
