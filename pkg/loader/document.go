// Package loader implements the Driver surface: opening a PDF file,
// walking its page tree, and interpreting a page's content stream
// against a content.Device. pkg/loader.Document is the library's single
// entry point; the JSON-document extraction mode (LoadPDF/
// LoadPDFConcurrent) is a convenience built on top of it using
// textDevice.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/AOShei/go-fast-pdf/pkg/content"
	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

// Page is one leaf of the resolved page tree: its own dictionary plus
// the inherited attributes (/Resources, /MediaBox) a content
// interpreter and a renderer both need.
type Page struct {
	Number    int
	Dict      pdf.DictionaryObject
	Resources pdf.DictionaryObject
	MediaBox  [4]float64

	node *pdf.PageNode
}

// Width and Height return the page's MediaBox extents.
func (p *Page) Width() float64  { return p.MediaBox[2] - p.MediaBox[0] }
func (p *Page) Height() float64 { return p.MediaBox[3] - p.MediaBox[1] }

// Document implements the Driver interface over an open PDF file.
type Document struct {
	file   *os.File
	reader *pdf.Reader
	tree   *pdf.PageTree
}

// Open opens path, applying password if the document is encrypted (the
// empty string is the correct password for an unencrypted document or
// one protected only by an owner password).
func Open(path string, password string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	reader, err := pdf.NewReader(f, pdf.Options{Password: password})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Document{file: f, reader: reader}, nil
}

// Close releases the underlying file handle.
func (d *Document) Close() error { return d.file.Close() }

// TotalPages returns the page count.
func (d *Document) TotalPages() int { return d.reader.NumPages() }

// GetPage returns the ith (0-indexed) page, with inherited attributes
// already resolved.
func (d *Document) GetPage(i int) (*Page, error) {
	node, err := d.reader.GetPage(i)
	if err != nil {
		return nil, err
	}

	page := &Page{Number: i, Dict: node.Dict, node: node, MediaBox: [4]float64{0, 0, 612, 792}}

	if res, ok := pdf.Inherited(node, "/Resources"); ok {
		if dict, ok := d.reader.Resolve(res).(pdf.DictionaryObject); ok {
			page.Resources = dict
		}
	}
	if mb, ok := pdf.Inherited(node, "/MediaBox"); ok {
		if arr, ok := d.reader.Resolve(mb).(pdf.ArrayObject); ok && len(arr) == 4 {
			for i, el := range arr {
				page.MediaBox[i] = pdf.AsNumber(d.reader.Resolve(el))
			}
		}
	}
	return page, nil
}

// Resolve exposes the reader's indirect-reference resolution to
// callers (textDevice, the font/image subsystems) that need it outside
// of InterpretPage.
func (d *Document) Resolve(o pdf.Object) pdf.Object { return d.reader.Resolve(o) }

// InterpretPage decodes pageNum's content stream and interprets it
// against dev. Page content is 0-indexed, matching GetPage.
func (d *Document) InterpretPage(pageNum int, dev content.Device) error {
	page, err := d.GetPage(pageNum)
	if err != nil {
		return err
	}

	data, err := d.pageContent(page)
	if err != nil {
		return err
	}

	in := content.New(d.reader.Resolve, dev, page.Resources, nil)
	return in.Run(data, pageNum+1, page.Width(), page.Height())
}

// pageContent resolves /Contents, concatenating multiple content
// stream parts with an intervening newline (PDF 32000-1 7.8.2: parts
// must be treated as if they were a single stream; producers rely on
// readers inserting whitespace at the seam since a token can't
// straddle two parts as written).
func (d *Document) pageContent(page *Page) ([]byte, error) {
	raw := d.reader.Resolve(page.Dict["/Contents"])
	var buf bytes.Buffer
	switch v := raw.(type) {
	case pdf.StreamObject:
		buf.Write(v.Data)
	case pdf.ArrayObject:
		for i, el := range v {
			if i > 0 {
				buf.WriteByte('\n')
			}
			if st, ok := d.reader.Resolve(el).(pdf.StreamObject); ok {
				buf.Write(st.Data)
			}
		}
	default:
		return nil, fmt.Errorf("page %d: /Contents is neither a stream nor an array", page.Number)
	}
	return buf.Bytes(), nil
}

var _ io.Closer = (*Document)(nil)
