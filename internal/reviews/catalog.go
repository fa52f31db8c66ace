// Package reviews provides the review texts the console analyzes.
package reviews

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
	"gopkg.in/yaml.v3"
)

// Example is a single review shown with its own authenticity analysis.
type Example struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Text  string `json:"text" yaml:"text"`
}

// Catalog is the set of reviews for one product page.
type Catalog struct {
	Product  string    `json:"product" yaml:"product"`
	Batch    []string  `json:"batch" yaml:"batch"`
	Examples []Example `json:"examples" yaml:"examples"`
}

// Options controls how catalog files are read.
type Options struct {
	// Selector picks review texts out of HTML files.
	Selector string
}

const DefaultSelector = ".review-text"

// BatchReviews returns the catalog batch as a domain batch.
func (c Catalog) BatchReviews() domain.ReviewBatch {
	return domain.ReviewBatch(append([]string(nil), c.Batch...))
}

// ExampleByID returns the example with the given id.
func (c Catalog) ExampleByID(id string) (Example, bool) {
	id = strings.TrimSpace(id)
	for _, ex := range c.Examples {
		if ex.ID == id {
			return ex, true
		}
	}
	return Example{}, false
}

// Load reads a catalog from a YAML, JSON or HTML file.
func Load(path string, opts Options) (Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Catalog{}, errors.New("reviews file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read reviews file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var cat Catalog
	switch ext {
	case ".html", ".htm":
		cat, err = catalogFromHTML(raw, opts.Selector)
	default:
		cat, err = parseCatalog(raw, ext)
	}
	if err != nil {
		return Catalog{}, err
	}

	cat = sanitizeCatalog(cat)
	if err := validateCatalog(cat); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// LoadOrDefault loads path, or returns the built-in catalog when path is empty.
func LoadOrDefault(path string, opts Options) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return Load(path, opts)
}

type unmarshalFn func([]byte, any) error

func parseCatalog(data []byte, ext string) (Catalog, error) {
	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var cat Catalog
		if err := d.fn(data, &cat); err == nil {
			return cat, nil
		}
	}

	return Catalog{}, errors.New("reviews file format not recognized (expected YAML, JSON or HTML)")
}

func catalogFromHTML(data []byte, selector string) (Catalog, error) {
	texts, err := ExtractHTML(strings.NewReader(string(data)), selector)
	if err != nil {
		return Catalog{}, err
	}
	cat := Catalog{Batch: texts}
	for i, text := range texts {
		cat.Examples = append(cat.Examples, Example{
			ID:   fmt.Sprintf("example-%d", i+1),
			Text: text,
		})
	}
	return cat, nil
}

func sanitizeCatalog(cat Catalog) Catalog {
	cat.Product = strings.TrimSpace(cat.Product)

	batch := make([]string, 0, len(cat.Batch))
	for _, r := range cat.Batch {
		if r = strings.TrimSpace(r); r != "" {
			batch = append(batch, r)
		}
	}
	cat.Batch = batch

	examples := make([]Example, 0, len(cat.Examples))
	for _, ex := range cat.Examples {
		ex.ID = strings.TrimSpace(ex.ID)
		ex.Label = strings.TrimSpace(ex.Label)
		ex.Text = strings.TrimSpace(ex.Text)
		if ex.Text == "" {
			continue
		}
		if ex.ID == "" {
			ex.ID = fmt.Sprintf("example-%d", len(examples)+1)
		}
		examples = append(examples, ex)
	}
	cat.Examples = examples
	return cat
}

func validateCatalog(cat Catalog) error {
	if err := cat.BatchReviews().Validate(); err != nil {
		return fmt.Errorf("reviews catalog batch: %w", err)
	}
	seen := make(map[string]struct{}, len(cat.Examples))
	for _, ex := range cat.Examples {
		if _, dup := seen[ex.ID]; dup {
			return fmt.Errorf("duplicate example id %q", ex.ID)
		}
		seen[ex.ID] = struct{}{}
	}
	return nil
}
