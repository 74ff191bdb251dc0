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

// Package regexgen turns a literal example string into a generalized regular
// expression. Digits and whitespace collapse into quantified classes, letters
// become single-character capture groups, everything else is kept literally.
package regexgen

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gitlab.com/tozd/go/errors"
)

// 🔤 Class is the character class of a single rune
type Class int

const (
	Special Class = iota
	Digit
	Letter
	Whitespace
)

// String returns a string representation of Class
func (c Class) String() string {
	switch c {
	case Digit:
		return "digit"
	case Letter:
		return "letter"
	case Whitespace:
		return "whitespace"
	default:
		return "special"
	}
}

// Classify returns the class of r. Digit and Whitespace are limited to what
// RE2's \d and \s match, so a synthesized pattern always matches its example.
func Classify(r rune) Class {
	switch {
	case r >= '0' && r <= '9':
		return Digit
	case r == ' ', r == '\t', r == '\n', r == '\f', r == '\r':
		return Whitespace
	case unicode.IsLetter(r):
		return Letter
	default:
		return Special
	}
}

// 🧱 Chunk is a run of characters sharing a class
type Chunk struct {
	Class Class
	Text  string
}

// 📦 Pattern is a synthesized regular expression
type Pattern struct {
	Source string // Regex source
	Valid  bool   // Whether Source compiles
	Err    error  // Compile error when Valid is false
}

// String returns the regex source
func (p Pattern) String() string {
	return p.Source
}

// Compile compiles the pattern source
func (p Pattern) Compile() (*regexp.Regexp, error) {
	if !p.Valid {
		return nil, p.Err
	}
	return regexp.Compile(p.Source)
}

// Chunks splits example into the chunk sequence used for synthesis. Digit and
// whitespace runs are grouped; letters and special characters each get their
// own chunk.
func Chunks(example string) []Chunk {
	var chunks []Chunk
	var run strings.Builder
	runClass := Special

	flush := func() {
		if run.Len() > 0 {
			chunks = append(chunks, Chunk{Class: runClass, Text: run.String()})
			run.Reset()
		}
	}

	for _, r := range example {
		class := Classify(r)
		switch class {
		case Digit, Whitespace:
			if class != runClass {
				flush()
			}
			run.WriteRune(r)
			runClass = class
		default:
			flush()
			chunks = append(chunks, Chunk{Class: class, Text: string(r)})
			runClass = class
		}
	}
	flush()

	return chunks
}

// 🎯 Synthesize builds a generalized pattern from example. The result carries
// no anchors and is meant for search semantics. An empty example yields an
// empty, valid pattern.
func Synthesize(example string) Pattern {
	var b strings.Builder
	for _, c := range Chunks(example) {
		b.WriteString(token(c))
	}

	p := Pattern{Source: b.String(), Valid: true}
	if _, err := regexp.Compile(p.Source); err != nil {
		p.Valid = false
		p.Err = errors.Errorf("compiling %q: %w", p.Source, err)
	}
	return p
}

func token(c Chunk) string {
	switch c.Class {
	case Letter:
		return "(" + c.Text + ")"
	case Digit:
		return quantify(`\d`, c.Text)
	case Whitespace:
		return quantify(`\s`, c.Text)
	default:
		return Escape(c.Text)
	}
}

func quantify(class, text string) string {
	n := len([]rune(text))
	if n > 1 {
		return fmt.Sprintf("%s{%d}", class, n)
	}
	return class
}
