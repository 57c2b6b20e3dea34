package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// Schemas describes the layout and style documents accepted by LoadConfig and LoadStyle.
func Schemas() (*jsonschema.Schema, *jsonschema.Schema) {
	reflector := jsonschema.Reflector{}

	layoutSchema := reflector.Reflect(&LayoutJSON{})
	layoutSchema.Title = "Layout"

	styleSchema := reflector.Reflect(&StyleJSON{})
	styleSchema.Title = "Style"

	return layoutSchema, styleSchema
}

// WriteSchemas writes layout.json and style.json into dir, creating it when needed.
func WriteSchemas(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create schema dir %s: %w", dir, err)
	}

	layoutSchema, styleSchema := Schemas()

	for name, schema := range map[string]*jsonschema.Schema{
		"layout.json": layoutSchema,
		"style.json":  styleSchema,
	} {
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("could not encode %s: %w", name, err)
		}

		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("could not write %s: %w", path, err)
		}
	}

	return nil
}
