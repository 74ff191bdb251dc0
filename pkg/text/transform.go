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
	"regexp"
	"strings"

	"github.com/walteh/pathshift/pkg/regexgen"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule describes one transform pass: phrase removal, then literal
// replacement
type Rule struct {
	Phrases string // Comma-separated literal phrases to remove
	Find    string // Text to replace
	Replace string // Replacement text
}

// PhraseList splits Phrases on commas, trims each entry and drops empties.
func (r Rule) PhraseList() []string {
	var out []string
	for _, p := range strings.Split(r.Phrases, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// replaces reports whether the replacement step is active. Both sides must be
// set.
func (r Rule) replaces() bool {
	return r.Find != "" && r.Replace != ""
}

// IsZero reports whether the rule would leave every line unchanged.
func (r Rule) IsZero() bool {
	return len(r.PhraseList()) == 0 && !r.replaces()
}

// 📊 Result holds the outcome of a transform
type Result struct {
	Lines        []string // Transformed lines, in input order
	Removals     int      // Number of phrase occurrences removed
	Replacements int      // Number of literal replacements made
	WasModified  bool     // Whether any line changed
}

// Text joins the transformed lines.
func (r *Result) Text() string {
	return strings.Join(r.Lines, "\n")
}

// 🛠️ Transformer applies a Rule line by line
type Transformer struct {
	rule     Rule
	removers []*regexp.Regexp
}

// NewTransformer compiles the removal patterns for rule. Phrases are escaped
// with regexgen.Escape and swallow any whitespace that follows them.
func NewTransformer(rule Rule) (*Transformer, error) {
	t := &Transformer{rule: rule}
	for _, phrase := range rule.PhraseList() {
		re, err := regexp.Compile(regexgen.Escape(phrase) + `\s*`)
		if err != nil {
			return nil, errors.Errorf("compiling removal pattern for %q: %w", phrase, err)
		}
		t.removers = append(t.removers, re)
	}
	return t, nil
}

// Line transforms a single line and returns the removal and replacement
// counts.
func (t *Transformer) Line(line string) (string, int, int) {
	removed := 0
	for _, re := range t.removers {
		if n := len(re.FindAllStringIndex(line, -1)); n > 0 {
			removed += n
			line = re.ReplaceAllLiteralString(line, "")
		}
	}

	replaced := 0
	if t.rule.replaces() {
		replaced = strings.Count(line, t.rule.Find)
		line = strings.ReplaceAll(line, t.rule.Find, t.rule.Replace)
	}
	return line, removed, replaced
}

// Apply transforms every line independently. Empty results are kept.
func (t *Transformer) Apply(lines []string) *Result {
	res := &Result{Lines: make([]string, len(lines))}
	for i, line := range lines {
		out, removed, replaced := t.Line(line)
		res.Lines[i] = out
		res.Removals += removed
		res.Replacements += replaced
		if out != line {
			res.WasModified = true
		}
	}
	return res
}

// 🎯 Transform applies rule to every line of text.
func Transform(text string, rule Rule) (*Result, error) {
	t, err := NewTransformer(rule)
	if err != nil {
		return nil, err
	}
	return t.Apply(Lines(text)), nil
}

// SwapSeparator flips the path separator style of s. When s contains a
// forward slash every '/' becomes '\', otherwise every '\' becomes '/'.
func SwapSeparator(s string) string {
	if strings.Contains(s, "/") {
		return strings.ReplaceAll(s, "/", `\`)
	}
	return strings.ReplaceAll(s, `\`, "/")
}
