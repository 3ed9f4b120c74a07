package screen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/waozixyz/kryon/screens/keys"
	"gopkg.in/yaml.v3"
)

// DocumentVersion is the authored document version this reader understands.
const DocumentVersion = 1

// Document is an authored screen catalog as stored on disk.
type Document struct {
	Version   int               `yaml:"version"`
	Screens   []Spec            `yaml:"screens"`
	Routes    []keys.RouteEntry `yaml:"routes"`
	Themes    []ThemeSpec       `yaml:"themes"`
	Layouts   []LayoutSpec      `yaml:"layouts"`
	Templates []TemplateSpec    `yaml:"templates"`
}

var ErrEmptyDocument = errors.New("screen: empty document")

// ReadDocument parses a YAML screen document. Structural problems in the slot
// graph are not reported here; run Validate for those.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("screen read: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	doc := &Document{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("screen read: decode: %w", err)
	}

	if doc.Version == 0 {
		doc.Version = DocumentVersion
	}
	if doc.Version > DocumentVersion {
		return nil, fmt.Errorf("screen read: document version %d is newer than supported %d", doc.Version, DocumentVersion)
	}

	for i := range doc.Screens {
		if doc.Screens[i].Key.IsNone() {
			return nil, fmt.Errorf("screen read: screen %d has no key", i)
		}
	}
	for i, t := range doc.Templates {
		if t.Ref.IsZero() {
			return nil, fmt.Errorf("screen read: template %d has no ref", i)
		}
	}
	for i, r := range doc.Routes {
		if r.Screen.IsNone() {
			return nil, fmt.Errorf("screen read: route %d (%q) has no screen", i, r.Route)
		}
	}

	return doc, nil
}

// ReadFile opens path and parses it with ReadDocument.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("screen read: %w", err)
	}
	defer f.Close()

	doc, err := ReadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
