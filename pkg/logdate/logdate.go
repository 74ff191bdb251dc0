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

// Package logdate extracts the distinct dates that prefix the lines of a log
// and returns them in chronological order, each in the form it was read in.
package logdate

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// prefixWidth is the number of leading bytes of a line inspected for a date.
const prefixWidth = 10

// ErrNoDates is returned when no line starts with a valid date.
var ErrNoDates = errors.Base("no valid date patterns found")

// 📅 Format is an accepted date prefix layout
type Format struct {
	Name   string         // Human readable layout, e.g. DD.MM.YYYY
	Layout string         // Go time layout
	re     *regexp.Regexp // Anchored surface pattern
}

// Formats lists the accepted layouts in priority order. Four-digit years are
// tried before two-digit ones.
var Formats = []Format{
	{Name: "DD.MM.YYYY", Layout: "02.01.2006", re: regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{4})`)},
	{Name: "DD-MM-YYYY", Layout: "02-01-2006", re: regexp.MustCompile(`^(\d{2}-\d{2}-\d{4})`)},
	{Name: "DD.MM.YY", Layout: "02.01.06", re: regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{2})`)},
	{Name: "DD-MM-YY", Layout: "02-01-06", re: regexp.MustCompile(`^(\d{2}-\d{2}-\d{2})`)},
}

// 🏷️ Token is a date read from a line prefix
type Token struct {
	Raw        string    // Text exactly as it appeared
	Format     string    // Name of the matching Format
	Date       time.Time // Parsed calendar date
	precedence int
}

// String returns the raw token text
func (t Token) String() string {
	return t.Raw
}

// Parse reads the date at the start of line. Only the first prefixWidth bytes
// are considered. The first format whose pattern matches and whose text is a
// valid calendar date wins.
func Parse(line string) (Token, bool) {
	prefix := line
	if len(prefix) > prefixWidth {
		prefix = prefix[:prefixWidth]
	}

	for i, f := range Formats {
		m := f.re.FindStringSubmatch(prefix)
		if m == nil {
			continue
		}
		date, err := time.Parse(f.Layout, m[1])
		if err != nil {
			continue
		}
		return Token{Raw: m[1], Format: f.Name, Date: date, precedence: i}, true
	}
	return Token{}, false
}

// 🔍 Index scans text and returns one token per calendar date in ascending
// order. When two surface forms name the same day the one with the
// higher-precedence format is kept.
func Index(ctx context.Context, text string) ([]Token, error) {
	logger := zerolog.Ctx(ctx)

	type key struct{ raw, format string }
	seen := make(map[key]struct{})
	byDay := make(map[time.Time]Token)

	for _, line := range strings.Split(text, "\n") {
		tok, ok := Parse(strings.TrimSuffix(line, "\r"))
		if !ok {
			continue
		}
		k := key{tok.Raw, tok.Format}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		if prev, ok := byDay[tok.Date]; ok {
			kept, dropped := prev, tok
			if tok.precedence < prev.precedence {
				kept, dropped = tok, prev
			}
			logger.Debug().Str("kept", kept.Raw).Str("dropped", dropped.Raw).Msg("same calendar date in two formats")
			byDay[tok.Date] = kept
			continue
		}
		byDay[tok.Date] = tok
	}

	if len(byDay) == 0 {
		return nil, ErrNoDates
	}

	tokens := make([]Token, 0, len(byDay))
	for _, tok := range byDay {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if !tokens[i].Date.Equal(tokens[j].Date) {
			return tokens[i].Date.Before(tokens[j].Date)
		}
		return tokens[i].precedence < tokens[j].precedence
	})

	logger.Debug().Int("dates", len(tokens)).Msg("indexed log dates")
	return tokens, nil
}

// Dates is Index reduced to the raw strings, usable as line prefixes.
func Dates(ctx context.Context, text string) ([]string, error) {
	tokens, err := Index(ctx, text)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Raw
	}
	return out, nil
}
