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
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrEmptyPattern is returned when no search pattern was supplied.
	ErrEmptyPattern = errors.Base("no search pattern supplied")
	// ErrInvalidPattern wraps a pattern that failed to compile.
	ErrInvalidPattern = errors.Base("invalid search pattern")
	// ErrNoMatch is returned when a valid pattern matched no line.
	ErrNoMatch = errors.Base("no matching lines")
)

// timestampPrefix is the leading "DD.DD.DD DD:DD:DD" stamp of a log line.
var timestampPrefix = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{2} \d{2}:\d{2}:\d{2}\s+`)

// Lines splits text into lines. A trailing newline does not produce an extra
// empty line and "\r\n" endings are accepted.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// StripTimestamp removes a leading timestamp and the whitespace after it.
// Lines without one are returned unchanged.
func StripTimestamp(line string) string {
	return timestampPrefix.ReplaceAllLiteralString(line, "")
}

// 📅 FilterByDate keeps the lines that start with date.
func FilterByDate(text, date string) []string {
	var out []string
	for _, line := range Lines(text) {
		if strings.HasPrefix(line, date) {
			out = append(out, line)
		}
	}
	return out
}

// 🔍 FilterByPattern keeps the lines in which pattern matches anywhere and
// strips their leading timestamp.
func FilterByPattern(ctx context.Context, text, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.WrapWith(err, ErrInvalidPattern)
	}

	var out []string
	for _, line := range Lines(text) {
		if re.MatchString(line) {
			out = append(out, StripTimestamp(line))
		}
	}

	zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Int("matches", len(out)).Msg("filtered lines by pattern")

	if len(out) == 0 {
		return nil, errors.Errorf("pattern %q: %w", pattern, ErrNoMatch)
	}
	return out, nil
}
