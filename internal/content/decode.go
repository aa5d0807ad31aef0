package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a content file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf returns the format for a file name, or false when the extension is
// not a content extension.
func FormatOf(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	default:
		return "", false
	}
}

// toJSON decodes data in the given format and re-encodes it as JSON so that
// every format goes through the same schema and the same decoder.
func toJSON(format Format, data []byte) ([]byte, error) {
	var doc interface{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatTOML:
		var table map[string]interface{}
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, err
		}
		doc = table
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported content format %q", format)
	}
	if doc == nil {
		return nil, fmt.Errorf("file is empty")
	}
	return json.Marshal(doc)
}

// scalar accepts a string, number or boolean and keeps its text. Defaults
// and validation constraints are written either way in content files.
type scalar string

func (s *scalar) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = scalar(str)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = scalar(b)
	return nil
}

type sectionDoc struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Audience    string     `json:"audience"`
	ReadingTime int        `json:"reading_time"`
	Summary     string     `json:"summary"`
	Navigation  []string   `json:"navigation"`
	Related     []topicDoc `json:"related"`
	Blocks      []blockDoc `json:"blocks"`
}

type topicDoc struct {
	Section string `json:"section"`
	Title   string `json:"title"`
}

// blockDoc is the union of every block shape; the schema guarantees only the
// properties of the named type are present.
type blockDoc struct {
	Type        string     `json:"type"`
	Text        string     `json:"text"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Items       []string   `json:"items"`
	Ordered     bool       `json:"ordered"`
	Checklist   bool       `json:"checklist"`
	Variant     string     `json:"variant"`
	Class       string     `json:"class"`
	Body        []blockDoc `json:"body"`
	Fields      []fieldDoc `json:"fields"`
	Rules       []ruleDoc  `json:"rules"`
	Steps       []stepDoc  `json:"steps"`
	Source      string     `json:"source"`
	Labels      []string   `json:"labels"`
	Section     string     `json:"section"`
	Topics      []topicDoc `json:"topics"`
}

type fieldDoc struct {
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     scalar `json:"default"`
	Validation  scalar `json:"validation"`
}

type ruleDoc struct {
	Rule        string `json:"rule"`
	Enforcement string `json:"enforcement"`
	Description string `json:"description"`
}

type stepDoc struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Substeps       []string `json:"substeps"`
	ExpectedResult string   `json:"expected_result"`
}
