package form

import (
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/matzehuels/rclayout/pkg/errors"
)

const rectSchema = `{
  "type": "object",
  "required": ["left", "top", "width", "height"],
  "properties": {
    "left":   {"type": "integer"},
    "top":    {"type": "integer"},
    "width":  {"type": "integer"},
    "height": {"type": "integer"}
  }
}`

// documentSchema describes a form document.
var documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["forms"],
  "properties": {
    "source": {"type": "string"},
    "forms": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "rect"],
        "properties": {
          "id":      {"type": "string", "minLength": 1},
          "kind":    {"enum": ["", "dialog", "dialogex", "panel", "menu"]},
          "caption": {"type": "string"},
          "style":   {"type": ["array", "null"], "items": {"type": "string"}},
          "rect":    ` + rectSchema + `,
          "controls": {
            "type": ["array", "null"],
            "items": {
              "type": "object",
              "required": ["kind", "rect"],
              "properties": {
                "id":      {"type": "string"},
                "kind":    {"type": "string", "minLength": 1},
                "label":   {"type": "string"},
                "style":   {"type": ["array", "null"], "items": {"type": "string"}},
                "default": {"type": "boolean"},
                "element": {"type": "string"},
                "rect":    ` + rectSchema + `
              }
            }
          }
        }
      }
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
})

// ValidateJSON checks a JSON form document against the document schema.
func ValidateJSON(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compile form schema")
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid json")
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New(errors.ErrCodeInvalidFormat, "schema: %s", strings.Join(msgs, "; "))
}
