// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render lays out summary blocks as a paginated PDF report.
package render

import (
	"embed"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// fontFamily is the embedded Unicode font. The PDF core fonts only cover
// cp1252, which would garble names such as Łukasz or any Cyrillic text.
const fontFamily = "DejaVu"

//go:embed fonts/*.ttf
var fontFiles embed.FS

// fontFaces maps fpdf style strings to the embedded font files.
var fontFaces = map[string]string{
	"":   "fonts/DejaVuSansCondensed.ttf",
	"B":  "fonts/DejaVuSansCondensed-Bold.ttf",
	"I":  "fonts/DejaVuSansCondensed-Oblique.ttf",
	"BI": "fonts/DejaVuSansCondensed-BoldOblique.ttf",
}

// addFonts registers the regular, bold, italic and bold-italic faces.
func addFonts(pdf *fpdf.Fpdf) error {
	for style, name := range fontFaces {
		data, err := fontFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("loading font %s: %w", name, err)
		}
		pdf.AddUTF8FontFromBytes(fontFamily, style, data)
	}
	return pdf.Error()
}

// Style holds the page geometry and type sizes of the report.
type Style struct {
	PageSize     string
	Margin       float64 // mm
	BodySize     float64 // pt
	HeadingSize  float64 // pt
	LineHeight   float64 // mm
	BulletIndent float64 // mm
	ParagraphGap float64 // mm
}

// DefaultStyle is an A4 report in 11pt DejaVu Sans Condensed.
var DefaultStyle = Style{
	PageSize:     "A4",
	Margin:       25,
	BodySize:     11,
	HeadingSize:  14,
	LineHeight:   5.5,
	BulletIndent: 8,
	ParagraphGap: 4,
}

// Options configures a render.
type Options struct {
	Title    string
	Style    Style
	Compress bool
}

// WritePDF renders blocks to w.
func WritePDF(w io.Writer, blocks iter.Seq[types.LayoutBlock], opts Options) error {
	style := opts.Style
	if style.PageSize == "" {
		style = DefaultStyle
	}

	pdf := fpdf.New("P", "mm", style.PageSize, "")
	pdf.SetCompression(opts.Compress)
	pdf.SetCreator("statement-summarizer", true)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	pdf.SetMargins(style.Margin, style.Margin, style.Margin)
	pdf.SetAutoPageBreak(true, style.Margin)
	if err := addFonts(pdf); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	pdf.AddPage()

	writeRuns := func(runs []types.Run, size float64, base string) {
		for _, r := range runs {
			pdf.SetFont(fontFamily, fontStyle(r, base), size)
			pdf.Write(style.LineHeight, r.Text)
		}
	}

	first := true
	for block := range blocks {
		switch block.Kind {
		case types.BlockHeading:
			if !first {
				pdf.Ln(style.ParagraphGap)
			}
			writeRuns(block.Runs, style.HeadingSize, "B")
			pdf.Ln(style.LineHeight + 2)

		case types.BlockBullet:
			left := style.Margin
			pdf.SetFont(fontFamily, "", style.BodySize)
			pdf.SetX(left + style.BulletIndent/2)
			pdf.Write(style.LineHeight, "•")
			pdf.SetLeftMargin(left + style.BulletIndent)
			pdf.SetX(left + style.BulletIndent)
			writeRuns(block.Runs, style.BodySize, "")
			pdf.SetLeftMargin(left)
			pdf.Ln(style.LineHeight + 1)

		default:
			writeRuns(block.Runs, style.BodySize, "")
			pdf.Ln(style.LineHeight + style.ParagraphGap)
		}
		first = false
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	return nil
}

// WriteFile renders blocks to a PDF file at path.
func WriteFile(path string, blocks iter.Seq[types.LayoutBlock], opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WritePDF(f, blocks, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// fontStyle combines a block's base style with a run's emphasis.
func fontStyle(r types.Run, base string) string {
	s := base
	if r.Bold && s != "B" {
		s += "B"
	}
	if r.Italic {
		s += "I"
	}
	return s
}
