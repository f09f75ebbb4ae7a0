// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk bootstrap format:
//
//	categories:
//	  - Adventure
//	  - Horror
type seedFile struct {
	Categories []string `yaml:"categories"`
}

// LoadSeed reads the category names from a YAML seed file.
func LoadSeed(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("category: read seed file: %w", err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes a YAML seed document. An empty document yields no
// names. Unknown keys are rejected so a
// typo does not silently seed nothing.
func ParseSeed(raw []byte) ([]string, error) {
	var file seedFile

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	err := decoder.Decode(&file)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("category: parse seed file: %w", err)
	}

	return file.Categories, nil
}
