package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/rclayout/pkg/errors"
)

// Encoding is a form document encoding.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingTOML Encoding = "toml"
	EncodingYAML Encoding = "yaml"
)

// EncodingFor picks the encoding from a file extension.
func EncodingFor(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return EncodingJSON, nil
	case ".toml":
		return EncodingTOML, nil
	case ".yaml", ".yml":
		return EncodingYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported forms file %q (want .json, .toml, .yaml)", filepath.Base(path))
}

// =============================================================================
// Document Reading API
// =============================================================================

// ReadFile reads a form document, choosing the decoder by extension.
func ReadFile(path string) (*Document, error) {
	enc, err := EncodingFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "forms file %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Decode(data, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Source == "" {
		doc.Source = filepath.Base(path)
	}
	return doc, nil
}

// Read decodes a form document from r.
func Read(r io.Reader, enc Encoding) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Decode(data, enc)
}

// Decode decodes a form document. Every encoding is validated against the
// document schema after decoding.
func Decode(data []byte, enc Encoding) (*Document, error) {
	var doc Document
	switch enc {
	case EncodingJSON:
		if err := ValidateJSON(data); err != nil {
			return nil, err
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
		return &doc, nil
	case EncodingTOML:
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
	case EncodingYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown encoding %q", enc)
	}

	// Re-encode so TOML and YAML documents go through the same schema.
	normalized, err := json.Marshal(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode for validation")
	}
	if err := ValidateJSON(normalized); err != nil {
		return nil, err
	}
	return &doc, nil
}

// =============================================================================
// Document Writing API
// =============================================================================

// Marshal encodes a form as JSON. The output is stable and is used to derive
// cache keys.
func (f Form) Marshal() ([]byte, error) {
	return json.Marshal(f)
}

// WriteFile writes a document in the encoding implied by the path.
func (d *Document) WriteFile(path string) error {
	enc, err := EncodingFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	switch enc {
	case EncodingJSON:
		e := json.NewEncoder(&buf)
		e.SetIndent("", "  ")
		err = e.Encode(d)
	case EncodingTOML:
		err = toml.NewEncoder(&buf).Encode(d)
	case EncodingYAML:
		err = yaml.NewEncoder(&buf).Encode(d)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", enc, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
