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

package text

import (
	"sort"

	"gitlab.com/tozd/go/errors"
)

// 🎛️ Preset is a canned search and transform setup for a known log source
type Preset struct {
	Name        string
	Description string
	Pattern     string // Search pattern applied before the transform
	Rule        Rule   // Replace is left for the caller to supply
}

// Presets are the built-in presets, keyed by name.
var Presets = map[string]Preset{
	"jar-cleanup": {
		Name:        "jar-cleanup",
		Description: "Collect jars a JVM marked for deletion on exit",
		Pattern:     `(Marking)\s(file)`,
		Rule: Rule{
			Phrases: "Marking file, ', to be deleted on exit of JVM",
			Find:    "./lib/",
		},
	},
}

// LookupPreset returns the named preset.
func LookupPreset(name string) (Preset, error) {
	p, ok := Presets[name]
	if !ok {
		return Preset{}, errors.Errorf("unknown preset %q (available: %v)", name, PresetNames())
	}
	return p, nil
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
