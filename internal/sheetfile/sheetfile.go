package sheetfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"mythus/internal/services"
	"mythus/internal/sheet"
)

// Schema describes the shape a document file must satisfy before it can be
// loaded into a store.
type Schema struct {
	Fields []string
	Tables []sheet.TableSpec
}

// Read decodes and validates a sheet document file. The format is chosen by
// extension: .json, .yaml, or .yml.
func Read(path string, schema Schema) (sheet.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sheet file: %w", err)
	}

	var raw map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, services.Wrap(services.ErrValidation, "sheetfile", "decode", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, services.Wrap(services.ErrValidation, "sheetfile", "decode", path, err)
		}
	default:
		return nil, services.Wrap(services.ErrValidation, "sheetfile", "decode",
			fmt.Sprintf("unsupported extension %q", ext), nil)
	}

	doc := sheet.Document(raw)
	if err := Validate(doc, schema); err != nil {
		return nil, err
	}
	return doc, nil
}

// Write encodes a document to path, choosing the format by extension.
func Write(path string, doc sheet.Document) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(doc, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	default:
		return services.Wrap(services.ErrValidation, "sheetfile", "encode",
			fmt.Sprintf("unsupported extension %q", ext), nil)
	}
	if err != nil {
		return fmt.Errorf("encode sheet file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write sheet file: %w", err)
	}
	return nil
}

// Validate checks a decoded document against the schema: flat fields must be
// strings when present, and tables must be sequences of mappings.
func Validate(doc sheet.Document, schema Schema) error {
	for _, field := range schema.Fields {
		value, ok := doc[field]
		if !ok {
			continue
		}
		if _, ok := value.(string); !ok {
			return services.Wrap(services.ErrValidation, "sheetfile", "validate",
				fmt.Sprintf("field %q must be a string", field), nil)
		}
	}

	for _, table := range schema.Tables {
		value, ok := doc[table.Key]
		if !ok {
			continue
		}
		rows, ok := value.([]any)
		if !ok {
			return services.Wrap(services.ErrValidation, "sheetfile", "validate",
				fmt.Sprintf("table %q must be a sequence", table.Key), nil)
		}
		for i, row := range rows {
			if _, ok := row.(map[string]any); !ok {
				return services.Wrap(services.ErrValidation, "sheetfile", "validate",
					fmt.Sprintf("table %q row %d must be a mapping", table.Key, i), nil)
			}
		}
	}
	return nil
}
