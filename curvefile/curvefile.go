// Package curvefile reads and writes tone curve configurations as YAML, TOML
// or JSON. A file maps channel names to lists of {x, y} control points:
//
//	luma:
//	  - {x: 0, y: 10}
//	  - {x: 80, y: 200}
//	  - {x: 255, y: 240}
package curvefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/kovidgoyal/tonecurve"
)

var _ = fmt.Print

type Format int

const (
	YAML Format = iota
	TOML
	JSON
)

var ErrUnknownFormat = errors.New("unknown curves file format")

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	case JSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	}
	return YAML, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Decode reads a configuration from r. Unknown fields inside points are
// errors. The configuration is not validated: use
// tonecurve.NewChannelSet or tonecurve.SnapshotFromConfig which repair
// malformed channels.
func Decode(r io.Reader, f Format) (cfg tonecurve.Config, err error) {
	switch f {
	case YAML:
		d := yaml.NewDecoder(r)
		d.KnownFields(true)
		err = d.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case TOML:
		err = toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg)
	case JSON:
		d := json.NewDecoder(r)
		d.DisallowUnknownFields()
		err = d.Decode(&cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s curves: %w", f, err)
	}
	return cfg, nil
}

// Load reads the curves file at path, with the format chosen by its
// extension.
func Load(path string) (tonecurve.Config, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode writes cfg to w.
func Encode(w io.Writer, cfg tonecurve.Config, f Format) (err error) {
	switch f {
	case YAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err = e.Encode(cfg); err == nil {
			err = e.Close()
		}
	case TOML:
		err = toml.NewEncoder(w).Encode(cfg)
	case JSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		err = e.Encode(cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s curves: %w", f, err)
	}
	return nil
}
