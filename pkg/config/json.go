// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 🔧 JSONParser reads .json config files. Besides the duration string form,
// move_timeout may be a plain number of seconds.
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

// jsonConfig mirrors Config with move_timeout left raw
type jsonConfig struct {
	Destination string          `json:"destination"`
	Workers     int             `json:"workers"`
	MoveTimeout json.RawMessage `json:"move_timeout"`
	DryRun      bool            `json:"dry_run"`
	Preset      string          `json:"preset"`
	Journal     string          `json:"journal"`
}

// 🔍 CanParse matches any file with a .json extension
func (p *JSONParser) CanParse(filename string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(filename)), ".json")
}

// 📝 Parse decodes a single JSON object into a Config
func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var raw jsonConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return nil, errors.Errorf("parsing JSON%s: %w", jsonPosition(data, err), err)
	}
	if decoder.More() {
		return nil, errors.Errorf("parsing JSON: trailing data after the config object")
	}

	timeout, err := jsonTimeout(raw.MoveTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		Destination: raw.Destination,
		Workers:     raw.Workers,
		MoveTimeout: timeout,
		DryRun:      raw.DryRun,
		Preset:      raw.Preset,
		Journal:     raw.Journal,
	}, nil
}

// jsonTimeout turns a move_timeout value into duration text. Numbers are
// seconds.
func jsonTimeout(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var seconds float64
	if err := json.Unmarshal(raw, &seconds); err != nil {
		return "", errors.Errorf("move_timeout: want a duration string or a number of seconds, got %s", raw)
	}
	return time.Duration(seconds * float64(time.Second)).String(), nil
}

// jsonPosition reports where a syntax or type error sits as " at line L, column C"
func jsonPosition(data []byte, err error) string {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return ""
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line := bytes.Count(before, []byte("\n")) + 1
	column := int(offset) - bytes.LastIndexByte(before, '\n')
	return fmt.Sprintf(" at line %d, column %d", line, column)
}
