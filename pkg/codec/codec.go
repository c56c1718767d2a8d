package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Version is the format version written by this package.
const Version = "1.0"

// Format selects the structured text encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats, primary first.
func Formats() []Format { return []Format{FormatJSON, FormatYAML} }

// Extensions lists the file extensions recognised by FormatFromPath.
func Extensions() []string { return []string{".json", ".yaml", ".yml"} }

// Ext returns the canonical file extension for f.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// ParseFormat resolves a format name such as "json", "yaml" or "yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q", name)
}

// FormatFromPath picks the format from a file extension. Anything that is not YAML is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Document is the persisted shape of an automaton.
// Field order is part of the compatibility contract.
type Document struct {
	Version     string                       `json:"version" yaml:"version" mapstructure:"version"`
	States      []string                     `json:"states" yaml:"states" mapstructure:"states"`
	Alphabet    []string                     `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	Initial     string                       `json:"initial" yaml:"initial" mapstructure:"initial"`
	Finals      []string                     `json:"finals" yaml:"finals" mapstructure:"finals"`
	Transitions map[string]map[string]string `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// wireDocument tracks field presence while decoding.
type wireDocument struct {
	Version     *string                       `json:"version" yaml:"version" mapstructure:"version"`
	States      *[]string                     `json:"states" yaml:"states" mapstructure:"states"`
	Alphabet    *[]string                     `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	Initial     *string                       `json:"initial" yaml:"initial" mapstructure:"initial"`
	Finals      *[]string                     `json:"finals" yaml:"finals" mapstructure:"finals"`
	Transitions *map[string]map[string]string `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// NewDocument captures the 5-tuple of a with the current version tag.
func NewDocument(a *automaton.Automaton) Document {
	def := a.Definition()
	return Document{
		Version:     Version,
		States:      def.States,
		Alphabet:    def.Alphabet,
		Initial:     def.Initial,
		Finals:      def.Finals,
		Transitions: def.Transitions,
	}
}

// Definition returns the document's 5-tuple.
func (d Document) Definition() automaton.Definition {
	return automaton.Definition{
		States:      d.States,
		Alphabet:    d.Alphabet,
		Initial:     d.Initial,
		Finals:      d.Finals,
		Transitions: d.Transitions,
	}
}

// Automaton builds the automaton described by the document.
func (d Document) Automaton() (*automaton.Automaton, error) {
	if err := checkVersion(d.Version); err != nil {
		return nil, err
	}
	return automaton.New(d.Definition())
}

// Save serializes a as indented JSON.
func Save(a *automaton.Automaton) ([]byte, error) {
	return Marshal(a, FormatJSON)
}

// Load parses JSON and constructs the automaton, inheriting its validation.
func Load(data []byte) (*automaton.Automaton, error) {
	return Unmarshal(data, FormatJSON)
}

// Marshal serializes a in the given format.
func Marshal(a *automaton.Automaton, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, a, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses data in the given format and constructs the automaton.
func Unmarshal(data []byte, format Format) (*automaton.Automaton, error) {
	var wire wireDocument
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &wire); err != nil {
			return nil, &FormatError{Reason: "malformed YAML", Err: err}
		}
	default:
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, &FormatError{Reason: "malformed JSON", Err: err}
		}
	}
	return fromWire(wire)
}

// Encode writes a to w in the given format.
func Encode(w io.Writer, a *automaton.Automaton, format Format) error {
	doc := NewDocument(a)
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return &EncodingError{Format: format, Err: err}
		}
		if err := enc.Close(); err != nil {
			return &EncodingError{Format: format, Err: err}
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return &EncodingError{Format: FormatJSON, Err: err}
		}
	}
	return nil
}

// Decode reads a whole document from r.
func Decode(r io.Reader, format Format) (*automaton.Automaton, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read automaton document: %w", err)
	}
	return Unmarshal(data, format)
}

// FromMap decodes an already parsed document, e.g. tool arguments or frontmatter.
func FromMap(m map[string]any) (*automaton.Automaton, error) {
	var wire wireDocument
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &wire,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, &FormatError{Reason: "malformed document", Err: err}
	}
	return fromWire(wire)
}

func fromWire(w wireDocument) (*automaton.Automaton, error) {
	if w.Version != nil {
		if err := checkVersion(*w.Version); err != nil {
			return nil, err
		}
	}

	switch {
	case w.States == nil:
		return nil, missing("states")
	case w.Alphabet == nil:
		return nil, missing("alphabet")
	case w.Initial == nil:
		return nil, missing("initial")
	case w.Finals == nil:
		return nil, missing("finals")
	case w.Transitions == nil:
		return nil, missing("transitions")
	}

	return automaton.New(automaton.Definition{
		States:      *w.States,
		Alphabet:    *w.Alphabet,
		Initial:     *w.Initial,
		Finals:      *w.Finals,
		Transitions: *w.Transitions,
	})
}

func missing(field string) error {
	return &FormatError{Field: field, Reason: "required field is missing"}
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	major, _, _ := strings.Cut(v, ".")
	if major != "1" {
		return &FormatError{Field: "version", Reason: fmt.Sprintf("unsupported version %q", v)}
	}
	return nil
}
