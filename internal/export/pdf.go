// Package export renders stored essays as downloadable documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"essaydesk/internal/types"
)

const (
	coreFont = "Helvetica"
	utf8Font = "EssayBody"
)

// Filename is the attachment name used for an essay download.
func Filename(id int64) string {
	return fmt.Sprintf("essay_%d.pdf", id)
}

type options struct {
	fontPath string
}

type Option func(*options)

// WithUTF8Font embeds the TrueType font at path so any Unicode text it has
// glyphs for renders as written. An empty path keeps the core font.
func WithUTF8Font(path string) Option {
	return func(o *options) { o.fontPath = path }
}

// WritePDF writes a single-document PDF with the corrected text followed by
// the original. Without a UTF-8 font, characters outside Windows-1252 are
// printed as '?'.
func WritePDF(w io.Writer, e types.Essay, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Corrected Essay", true)
	pdf.SetCreationDate(e.Timestamp)
	pdf.SetMargins(20, 20, 20)

	family, text := coreFont, coreText(pdf)
	if o.fontPath != "" {
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8Font(utf8Font, style, o.fontPath)
		}
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("failed to load font %s: %w", o.fontPath, err)
		}
		family, text = utf8Font, func(s string) string { return s }
	}
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 10, "Corrected Essay", "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont(family, "", 12)
	pdf.MultiCell(0, 6, text(e.CorrectedText), "", "L", false)

	pdf.Ln(4)
	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	y := pdf.GetY()
	pdf.Line(left, y, pageW-right, y)
	pdf.Ln(4)

	pdf.SetFont(family, "B", 12)
	pdf.CellFormat(0, 8, "Original Text:", "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 12)
	pdf.MultiCell(0, 6, text(e.OriginalText), "", "L", false)

	pdf.Ln(4)
	pdf.SetFont(family, "I", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Words: %d  Paragraphs: %d  Backspaces: %d  Saved: %s",
		e.WordCount, e.ParagraphCount, e.BackspaceCount, e.Timestamp.UTC().Format("2006-01-02 15:04 MST")),
		"", 1, "L", false, 0, "")

	return pdf.Output(w)
}

// coreText returns the encoder for the built-in font.
func coreText(pdf *fpdf.Fpdf) func(string) string {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return func(s string) string { return tr(cp1252Safe(s)) }
}

// cp1252Safe replaces runes Windows-1252 cannot encode with '?'.
func cp1252Safe(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return '?'
		}
		return r
	}, s)
}
