package compiler

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/rewind/internal/dto"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDefinition is returned when the source document has no content.
var ErrEmptyDefinition = errors.New("empty definition")

// Parser is responsible for converting raw bytes into a Definition.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a definition file.
func (p *Parser) ParseFile(path string) (domain.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("failed to read definition: %w", err)
	}
	def, err := p.Parse(data)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes a YAML or JSON document (JSON is valid YAML) into a Definition.
// The declaration order of the states is preserved in Definition.Order.
func (p *Parser) Parse(data []byte) (domain.Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Definition{}, fmt.Errorf("failed to parse definition: %w", err)
	}
	if len(doc.Content) == 0 {
		return domain.Definition{}, ErrEmptyDefinition
	}

	var raw map[string]any
	if err := doc.Decode(&raw); err != nil {
		return domain.Definition{}, fmt.Errorf("definition must be a mapping: %w", err)
	}

	return p.Decode(raw, stateOrder(&doc))
}

// Decode converts a generic map (as produced by YAML/JSON decoders) into a Definition.
func (p *Parser) Decode(raw map[string]any, order []string) (domain.Definition, error) {
	var meta dto.DefinitionMetadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &meta,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return domain.Definition{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return domain.Definition{}, fmt.Errorf("failed to decode definition: %w", err)
	}

	// Basic validation
	if meta.Initial == "" {
		return domain.Definition{}, fmt.Errorf("definition missing initial state")
	}
	if len(meta.States) == 0 {
		return domain.Definition{}, fmt.Errorf("definition has no states")
	}

	return meta.ToDomain(order), nil
}

// stateOrder returns the keys of the top-level "states" mapping, in document order.
func stateOrder(doc *yaml.Node) []string {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "states" {
			continue
		}
		states := root.Content[i+1]
		if states.Kind != yaml.MappingNode {
			return nil
		}
		order := make([]string, 0, len(states.Content)/2)
		for j := 0; j+1 < len(states.Content); j += 2 {
			order = append(order, states.Content[j].Value)
		}
		return order
	}
	return nil
}
