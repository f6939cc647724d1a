package render

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"unicode/utf8"
)

// RenderFunc writes text in one output format
type RenderFunc func(w io.Writer, text string) error

// Renderer describes one downloadable output format
type Renderer struct {
	Format      string
	ContentType string
	FileName    string
	Render      RenderFunc
}

// Registry maps format names to renderers
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates a registry with the text, json, docx and pdf renderers
func NewRegistry() *Registry {
	r := &Registry{renderers: make(map[string]Renderer)}

	r.Register(Renderer{
		Format:      "text",
		ContentType: "text/plain; charset=utf-8",
		FileName:    "optimized_cv.txt",
		Render:      Text,
	})
	r.Register(Renderer{
		Format:      "json",
		ContentType: "application/json",
		FileName:    "optimized_cv.json",
		Render:      JSON,
	})
	r.Register(Renderer{
		Format:      "docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		FileName:    "optimized_cv.docx",
		Render:      DOCX,
	})
	r.Register(Renderer{
		Format:      "pdf",
		ContentType: "application/pdf",
		FileName:    "optimized_cv.pdf",
		Render:      PDF,
	})

	return r
}

// Register adds or replaces a renderer
func (r *Registry) Register(renderer Renderer) {
	r.renderers[renderer.Format] = renderer
}

// Get returns the renderer for format
func (r *Registry) Get(format string) (Renderer, error) {
	renderer, ok := r.renderers[format]
	if !ok {
		return Renderer{}, fmt.Errorf("no renderer for format '%s'", format)
	}
	return renderer, nil
}

// Formats lists the registered format names in sorted order
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.renderers))
	for format := range r.renderers {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}

// Text writes text unchanged
func Text(w io.Writer, text string) error {
	_, err := io.WriteString(w, text)
	return err
}

// JSON writes the optimize response body
func JSON(w io.Writer, text string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		OptimizedCV string `json:"optimized_cv"`
		Length      int    `json:"length"`
	}{text, utf8.RuneCountInString(text)})
}
