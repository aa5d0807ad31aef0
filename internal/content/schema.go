package content

import (
	"bytes"
	_ "embed"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed section.schema.json
var sectionSchemaJSON []byte

//go:embed navigation.schema.json
var navigationSchemaJSON []byte

const (
	sectionSchemaURL    = "manualkit/section.schema.json"
	navigationSchemaURL = "manualkit/navigation.schema.json"
)

var (
	schemaOnce       sync.Once
	sectionSchema    *jsonschema.Schema
	navigationSchema *jsonschema.Schema
	schemaErr        error
)

func compileSchemas() (*jsonschema.Schema, *jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for url, raw := range map[string][]byte{
			sectionSchemaURL:    sectionSchemaJSON,
			navigationSchemaURL: navigationSchemaJSON,
		} {
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				schemaErr = fmt.Errorf("parsing %s: %w", url, err)
				return
			}
			if err := c.AddResource(url, doc); err != nil {
				schemaErr = fmt.Errorf("adding %s: %w", url, err)
				return
			}
		}
		if sectionSchema, schemaErr = c.Compile(sectionSchemaURL); schemaErr != nil {
			return
		}
		navigationSchema, schemaErr = c.Compile(navigationSchemaURL)
	})
	return sectionSchema, navigationSchema, schemaErr
}

// SchemaViolation is one failed schema keyword at an instance location.
type SchemaViolation struct {
	Pointer string
	Message string
}

var schemaPrinter = message.NewPrinter(language.English)

// validate checks the JSON document against schema and returns the leaf
// violations. A nil slice means the document conforms.
func validate(schema *jsonschema.Schema, doc []byte) ([]SchemaViolation, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}
	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !stderrors.As(err, &ve) {
		return nil, err
	}
	var out []SchemaViolation
	collectViolations(ve, &out)
	return out, nil
}

func collectViolations(ve *jsonschema.ValidationError, out *[]SchemaViolation) {
	if len(ve.Causes) == 0 {
		*out = append(*out, SchemaViolation{
			Pointer: pointer(ve.InstanceLocation),
			Message: ve.ErrorKind.LocalizedString(schemaPrinter),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectViolations(cause, out)
	}
}

// pointer renders path as an RFC 6901 JSON pointer.
func pointer(path []string) string {
	if len(path) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range path {
		b.WriteByte('/')
		tok = strings.ReplaceAll(tok, "~", "~0")
		b.WriteString(strings.ReplaceAll(tok, "/", "~1"))
	}
	return b.String()
}
