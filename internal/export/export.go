// Package export produces slide export payloads and generated deck artifacts.
//
// Neither path renders real documents: the export bodies are labeled textual
// placeholders, which is the documented contract of the export endpoints.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/slidesmith/slidesmith/internal/model"
)

// Supported export formats.
const (
	FormatPDF  = "pdf"
	FormatPPTX = "pptx"
)

// MIME types for exported files.
const (
	MimePDF  = "application/pdf"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// File is a downloadable export payload.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Slide builds the placeholder export body for a single slide. Unknown
// formats fall back to PDF.
func Slide(s *model.Slide, format string) File {
	if format != FormatPPTX {
		format = FormatPDF
	}
	contentType := MimePDF
	label := "PDF"
	if format == FormatPPTX {
		contentType = MimePPTX
		label = "PPTX"
	}
	body := fmt.Sprintf("%s EXPORT FOR SLIDE %d\n\nTitle: %s\nContent: %s", label, s.ID, s.Title, s.Content)
	return File{
		Name:        fmt.Sprintf("slide-%d.%s", s.ID, format),
		ContentType: contentType,
		Body:        []byte(body),
	}
}

// ArtifactWriter persists generated deck files under <uploadDir>/presentations.
type ArtifactWriter struct {
	dir string
}

// NewArtifactWriter constructs a writer rooted at the uploads directory.
func NewArtifactWriter(uploadDir string) *ArtifactWriter {
	return &ArtifactWriter{dir: filepath.Join(uploadDir, "presentations")}
}

// WriteDeck writes a placeholder .pptx artifact for the generated outline and
// returns its serving URL.
func (w *ArtifactWriter) WriteDeck(title string, slides []model.SlidePlan) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "PPTX EXPORT: %s\n", title)
	for _, s := range slides {
		fmt.Fprintf(&b, "\n--- Slide %d: %s ---\n", s.SlideNumber, s.Title)
		for _, bullet := range s.Bullets {
			fmt.Fprintf(&b, "- %s\n", bullet)
		}
		if s.Notes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", s.Notes)
		}
		if s.ImageHint != "" {
			fmt.Fprintf(&b, "Image: %s\n", s.ImageHint)
		}
	}
	name := fmt.Sprintf("presentation_%d.pptx", time.Now().UnixMilli())
	if err := os.WriteFile(filepath.Join(w.dir, name), []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return "/uploads/presentations/" + name, nil
}
