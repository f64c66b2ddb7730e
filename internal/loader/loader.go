// Package loader parses declarative story blueprints from YAML.
//
// A blueprint file declares a story name, an optional state contract of
// field names to type strings, and an ordered step list where each entry is
// either a step identifier or an inline nested story:
//
//	name: checkout
//	contract:
//	  amount: int
//	  invoice: string
//	steps:
//	  - reserve
//	  - name: billing
//	    steps:
//	      - charge
//	      - receipt
//	  - notify
//
// Binding a blueprint to a collaborator map assembles the nested stories
// bottom-up and produces an executable story.Story.
package loader

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/fable/pkg/schema"
	"github.com/aretw0/fable/pkg/story"
)

// Blueprint is the parsed, declarative form of a story file.
type Blueprint struct {
	Name     string
	Contract *schema.Schema
	Steps    []Step
}

// Step is one blueprint entry. A non-empty Steps marks a nested story.
type Step struct {
	Name  string
	Steps []Step
}

// fileDoc mirrors the YAML document layout. Step entries are polymorphic
// (string or nested mapping), so they arrive untyped.
type fileDoc struct {
	Name     string            `yaml:"name"`
	Contract map[string]string `yaml:"contract"`
	Steps    []any             `yaml:"steps"`
}

// groupDoc is a nested story entry inside a step list.
type groupDoc struct {
	Name  string `mapstructure:"name"`
	Steps []any  `mapstructure:"steps"`
}

// Load reads and parses a blueprint file.
func Load(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint: %w", err)
	}
	bp, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bp, nil
}

// Parse parses blueprint YAML.
func Parse(data []byte) (*Blueprint, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid blueprint yaml: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("blueprint is missing a story name")
	}

	var contract *schema.Schema
	if len(doc.Contract) > 0 {
		var err error
		contract, err = schema.ParseTypeMap(doc.Contract)
		if err != nil {
			return nil, fmt.Errorf("contract: %w", err)
		}
	}

	steps, err := parseSteps(doc.Steps)
	if err != nil {
		return nil, fmt.Errorf("story %q: %w", doc.Name, err)
	}

	return &Blueprint{Name: doc.Name, Contract: contract, Steps: steps}, nil
}

func parseSteps(entries []any) ([]Step, error) {
	steps := make([]Step, 0, len(entries))
	for i, entry := range entries {
		switch v := entry.(type) {
		case string:
			if v == "" {
				return nil, fmt.Errorf("step %d: identifier is empty", i)
			}
			steps = append(steps, Step{Name: v})
		case map[string]any:
			var group groupDoc
			if err := mapstructure.Decode(v, &group); err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			if group.Name == "" {
				return nil, fmt.Errorf("step %d: nested story is missing a name", i)
			}
			if len(group.Steps) == 0 {
				return nil, fmt.Errorf("step %d: nested story %q has no steps", i, group.Name)
			}
			nested, err := parseSteps(group.Steps)
			if err != nil {
				return nil, fmt.Errorf("nested story %q: %w", group.Name, err)
			}
			steps = append(steps, Step{Name: group.Name, Steps: nested})
		default:
			return nil, fmt.Errorf("step %d: must be a string or a nested story, got %T", i, entry)
		}
	}
	return steps, nil
}

// Bind assembles the blueprint into an executable story. Nested stories are
// bound bottom-up against the same collaborator map; a nested story's slot
// in its parent is filled by the assembled sub-story itself.
func (b *Blueprint) Bind(collaborators story.Collaborators, opts ...story.Option) (*story.Story, error) {
	return bind(b.Name, b.Steps, collaborators, opts...)
}

func bind(name string, steps []Step, collaborators story.Collaborators, opts ...story.Option) (*story.Story, error) {
	names := make([]string, len(steps))
	merged := make(story.Collaborators, len(collaborators)+len(steps))
	for k, v := range collaborators {
		merged[k] = v
	}

	for i, stp := range steps {
		names[i] = stp.Name
		if len(stp.Steps) > 0 {
			sub, err := bind(stp.Name, stp.Steps, collaborators, opts...)
			if err != nil {
				return nil, err
			}
			merged[stp.Name] = sub
		}
	}

	def, err := story.Define(name, names...)
	if err != nil {
		return nil, err
	}
	return def.Bind(merged, opts...)
}
