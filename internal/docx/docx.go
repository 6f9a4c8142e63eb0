// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx reads Word (.docx) report templates into a template.Document
// and writes the modified document back.
//
// Only word/document.xml is interpreted. Every other part of the package is
// copied unchanged, and body elements the inserter does not touch (tables,
// section properties, untouched paragraphs) are written back byte for byte.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/statement-summarizer/internal/template"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

const documentPart = "word/document.xml"

// node is one top-level child of <w:body>, kept as raw XML.
type node struct {
	raw       []byte
	paragraph bool
}

// Template is an opened .docx file.
type Template struct {
	// Doc is the paragraph view of the document body that the inserter edits.
	Doc *template.Document

	path   string
	files  []*zip.File
	reader *zip.ReadCloser
	data   []byte

	prefix []byte // document.xml up to and including <w:body>
	nodes  []node
	suffix []byte // </w:body> to the end
}

// Open reads the template at path. Close releases the underlying file.
func Open(path string) (*Template, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening template %s: %w", path, err)
	}

	t := &Template{path: path, reader: rc, files: rc.File}
	if err := t.load(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	return t, nil
}

// Close releases the template file.
func (t *Template) Close() error {
	if t.reader == nil {
		return nil
	}
	err := t.reader.Close()
	t.reader = nil
	return err
}

func (t *Template) load() error {
	var part *zip.File
	for _, f := range t.files {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return fmt.Errorf("%s not found", documentPart)
	}

	r, err := part.Open()
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return err
	}
	t.data = data

	if err := t.splitBody(); err != nil {
		return err
	}

	doc := &template.Document{}
	for i, n := range t.nodes {
		if !n.paragraph {
			continue
		}
		runs, props := parseParagraph(n.raw)
		doc.Paragraphs = append(doc.Paragraphs, &template.Paragraph{Runs: runs, Props: props, Key: i})
	}
	t.Doc = doc
	return nil
}

// splitBody cuts document.xml into prefix, top-level body nodes and suffix.
func (t *Template) splitBody() error {
	d := xml.NewDecoder(bytes.NewReader(t.data))

	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("no body element in %s", documentPart)
			}
			return fmt.Errorf("parsing %s: %w", documentPart, err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "body" {
			break
		}
	}
	t.prefix = t.data[:d.InputOffset()]

	for {
		start := d.InputOffset()
		tok, err := d.Token()
		if err != nil {
			return fmt.Errorf("parsing %s body: %w", documentPart, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if err := d.Skip(); err != nil {
				return fmt.Errorf("parsing %s body: %w", documentPart, err)
			}
			t.nodes = append(t.nodes, node{
				raw:       t.data[start:d.InputOffset()],
				paragraph: el.Name.Local == "p",
			})
		case xml.EndElement:
			t.suffix = t.data[start:]
			return nil
		default:
			t.nodes = append(t.nodes, node{raw: t.data[start:d.InputOffset()]})
		}
	}
}

// Save writes the template, with the edits made to Doc, to path. The
// template file itself is never overwritten.
func (t *Template) Save(path string) error {
	if samePath(path, t.path) {
		return fmt.Errorf("refusing to overwrite template %s", t.path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := t.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Write serializes the document as a .docx package to w.
func (t *Template) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, f := range t.files {
		if f.Name != documentPart {
			if err := zw.Copy(f); err != nil {
				return fmt.Errorf("copying %s: %w", f.Name, err)
			}
			continue
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   f.Method,
			Modified: f.Modified,
		})
		if err != nil {
			return fmt.Errorf("creating %s: %w", documentPart, err)
		}
		if _, err := fw.Write(t.render()); err != nil {
			return fmt.Errorf("writing %s: %w", documentPart, err)
		}
	}
	return zw.Close()
}

// render rebuilds document.xml from the original nodes and Doc. Paragraphs
// inserted into Doc are emitted after the nearest preceding source paragraph.
func (t *Template) render() []byte {
	replaced := make(map[int]*template.Paragraph)
	after := make(map[int][]*template.Paragraph)

	last := -1
	for _, p := range t.Doc.Paragraphs {
		if p.Key >= 0 {
			last = p.Key
			if p.Modified {
				replaced[p.Key] = p
			}
			continue
		}
		after[last] = append(after[last], p)
	}

	var buf bytes.Buffer
	buf.Write(t.prefix)
	for _, p := range after[-1] {
		writeParagraph(&buf, p)
	}
	for i, n := range t.nodes {
		if p, ok := replaced[i]; ok {
			writeParagraph(&buf, p)
		} else {
			buf.Write(n.raw)
		}
		for _, p := range after[i] {
			writeParagraph(&buf, p)
		}
	}
	buf.Write(t.suffix)
	return buf.Bytes()
}

// sectPr inside a w:pPr marks the paragraph as the last of a section.
var sectPr = regexp.MustCompile(`(?s)<w:sectPr\b[^>]*/>|<w:sectPr\b.*?</w:sectPr>`)

// writeParagraph emits a paragraph with its properties and one w:r per run.
// Inserted paragraphs inherit the properties without any section break.
func writeParagraph(buf *bytes.Buffer, p *template.Paragraph) {
	props := p.Props
	if p.Key < 0 {
		props = sectPr.ReplaceAll(props, nil)
	}
	buf.WriteString("<w:p>")
	buf.Write(props)
	for _, r := range p.Runs {
		buf.WriteString("<w:r>")
		if r.Bold || r.Italic {
			buf.WriteString("<w:rPr>")
			if r.Bold {
				buf.WriteString("<w:b/>")
			}
			if r.Italic {
				buf.WriteString("<w:i/>")
			}
			buf.WriteString("</w:rPr>")
		}
		buf.WriteString(`<w:t xml:space="preserve">`)
		xml.EscapeText(buf, []byte(r.Text))
		buf.WriteString("</w:t></w:r>")
	}
	buf.WriteString("</w:p>")
}

// parseParagraph returns the runs of a raw <w:p> element and its raw
// <w:pPr> child, if any.
func parseParagraph(raw []byte) ([]types.Run, []byte) {
	d := xml.NewDecoder(bytes.NewReader(raw))

	var (
		runs    []types.Run
		props   []byte
		depth   int
		cur     *types.Run
		inText  bool
		inProps bool
	)

	for {
		start := d.InputOffset()
		tok, err := d.Token()
		if err != nil {
			break
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			switch el.Name.Local {
			case "pPr":
				if depth == 2 {
					if err := d.Skip(); err != nil {
						return runs, props
					}
					props = raw[start:d.InputOffset()]
					depth--
				}
			case "r":
				cur = &types.Run{}
			case "rPr":
				inProps = cur != nil
			case "b":
				if inProps && enabled(el) {
					cur.Bold = true
				}
			case "i":
				if inProps && enabled(el) {
					cur.Italic = true
				}
			case "t":
				inText = cur != nil
			case "tab":
				if cur != nil && !inProps {
					cur.Text += "\t"
				}
			case "br", "cr":
				if cur != nil && !inProps {
					cur.Text += "\n"
				}
			}
		case xml.EndElement:
			depth--
			switch el.Name.Local {
			case "r":
				if cur != nil && cur.Text != "" {
					runs = append(runs, *cur)
				}
				cur = nil
			case "rPr":
				inProps = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && cur != nil {
				cur.Text += string(el)
			}
		}
	}
	return runs, props
}

// enabled reports whether a toggle property such as <w:b/> is on. A w:val of
// "0", "false" or "off" switches it off.
func enabled(el xml.StartElement) bool {
	for _, a := range el.Attr {
		if a.Name.Local == "val" {
			switch strings.ToLower(a.Value) {
			case "0", "false", "off":
				return false
			}
		}
	}
	return true
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

// ReadText returns the non-blank paragraph texts of the .docx at path, one
// per line.
func ReadText(path string) (string, error) {
	t, err := Open(path)
	if err != nil {
		return "", err
	}
	defer t.Close()

	var lines []string
	for _, s := range t.Doc.Texts() {
		if strings.TrimSpace(s) != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n"), nil
}
