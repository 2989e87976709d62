package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go.viam.com/collide/logging"
)

// Read reads and validates a scene file. The format is taken from the file extension.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	cfg, err := FromReader(bytes.NewReader(buf), filepath.Ext(filePath), logger)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read scene %q", filePath)
	}
	return cfg, nil
}

// FromReader reads and validates a scene. ext is ".json", ".yaml" or ".yml".
func FromReader(r io.Reader, ext string, logger logging.Logger) (*Config, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(buf))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	default:
		return nil, errors.Wrap(ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse scene")
	}

	if err := cfg.Validate("scene"); err != nil {
		return nil, err
	}
	logger.Debugw("scene read", "dimension", cfg.Dimension, "objects", len(cfg.Objects))
	return cfg, nil
}
