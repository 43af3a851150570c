package conversion

import (
	"encoding/json"
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/forgelabs/unitforge/internal/registry"
)

// Document is the serialized handoff artifact for downstream code
// generators: the resolved units and every conversion fact.
type Document struct {
	Catalog string      `toml:"catalog" json:"catalog"`
	Units   []UnitEntry `toml:"unit" json:"units"`
	Facts   []Fact      `toml:"fact" json:"facts"`
}

// UnitEntry pairs a registered unit name with its canonical identity.
type UnitEntry struct {
	Name     string `toml:"name" json:"name"`
	Identity string `toml:"identity" json:"identity"`
}

// BuildDocument assembles the export document from a finished registry
// and its enumerated facts. Units are listed in sorted name order.
func BuildDocument(catalogName string, reg *registry.Registry, facts []Fact) Document {
	doc := Document{Catalog: catalogName, Facts: facts}
	for _, name := range reg.Names() {
		id, _ := reg.Identity(name)
		doc.Units = append(doc.Units, UnitEntry{Name: name, Identity: id.Key()})
	}
	return doc
}

// WriteTOML serializes the document as TOML with a trailing newline.
func WriteTOML(w io.Writer, doc Document) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling facts to TOML: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

// WriteJSON serializes the document as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling facts to JSON: %w", err)
	}
	return nil
}
