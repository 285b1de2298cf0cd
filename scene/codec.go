package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/collide"
)

// Format is a scene file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFor picks the format from a file extension: .yaml, .yml or .json.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Decode reads a document. Unknown fields are rejected so typos in
// hand-edited files surface as errors. The document is not validated.
func Decode(r io.Reader, f Format) (Document, error) {
	var d Document
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && err != io.EOF {
			return Document{}, fmt.Errorf("scene: decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return Document{}, fmt.Errorf("scene: decode json: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if d.Version == 0 {
		d.Version = Version
	}
	return d, nil
}

// Encode writes a document.
func Encode(w io.Writer, f Format, d Document) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("scene: encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("scene: encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// Load reads and validates the scene at path. A leading ~ is expanded.
func Load(path string) (Document, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return Document{}, err
	}
	f, err := FormatFor(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	d, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	collide.Logger().Debug("scene: loaded", "path", path, "obstacles", len(d.Obstacles))
	return d, nil
}

// Save validates d and writes it to path atomically: the document goes to
// a temporary file in the same directory which then replaces path.
func Save(path string, d Document) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	if d.Version == 0 {
		d.Version = Version
	}
	if err := d.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, f, d); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("scene: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("scene: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("scene: chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("scene: sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("scene: replace %s: %w", path, err)
	}
	collide.Logger().Debug("scene: saved", "path", path, "obstacles", len(d.Obstacles))
	return nil
}
