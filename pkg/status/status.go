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

package status

import (
	"gitlab.com/tozd/go/errors"
)

// 📊 Kind classifies the result of relocating one path
type Kind int

const (
	KindUnknown     Kind = iota
	Moved                // File was moved to its destination
	SkippedNotFound      // Source did not exist
	Failed               // Move was attempted or refused and failed
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case Moved:
		return "moved"
	case SkippedNotFound:
		return "not-found"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Severity returns the severity an outcome of this kind is reported with
func (k Kind) Severity() Severity {
	switch k {
	case Moved:
		return SeverityInfo
	case SkippedNotFound:
		return SeverityWarn
	default:
		return SeverityError
	}
}

// 🚦 Severity tags a report entry
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

// String returns a string representation of Severity
func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// 📄 Outcome is the classified result for one path entry
type Outcome struct {
	Source      string // Path as read from the buffer
	SubPath     string // Parent and file name in the source's separator style
	Destination string // Full destination path, empty when it could not be derived
	Kind        Kind
	Cause       error // Set for Failed outcomes
}

// CauseMessage returns the cause text, or an empty string
func (o Outcome) CauseMessage() string {
	if o.Cause == nil {
		return ""
	}
	return o.Cause.Error()
}

// 🧮 Statistics are the aggregate counts of one run
type Statistics struct {
	Total int `json:"total"` // Non-empty lines processed
	Moved int `json:"moved"`
	Warn  int `json:"warn"`  // Sources not found
	Error int `json:"error"` // Failed moves
}

// Add counts one outcome
func (s *Statistics) Add(o Outcome) {
	s.Total++
	switch o.Kind {
	case Moved:
		s.Moved++
	case SkippedNotFound:
		s.Warn++
	default:
		s.Error++
	}
}

// Consistent reports whether the counts add up to the total
func (s Statistics) Consistent() bool {
	return s.Moved+s.Warn+s.Error == s.Total
}

// Tally derives statistics from an outcome sequence
func Tally(outcomes []Outcome) Statistics {
	var s Statistics
	for _, o := range outcomes {
		s.Add(o)
	}
	return s
}

// 📝 Entry is a severity-tagged report line
type Entry struct {
	Severity Severity
	Message  string
}

// Entries renders outcomes and their statistics as report entries, one per
// outcome followed by the summary.
func Entries(outcomes []Outcome, stats Statistics, f Formatter) []Entry {
	if f == nil {
		f = NewDefaultFormatter()
	}
	entries := make([]Entry, 0, len(outcomes)+3)
	for _, o := range outcomes {
		entries = append(entries, Entry{Severity: o.Kind.Severity(), Message: f.FormatOutcome(o)})
	}
	return append(entries, f.FormatSummary(stats)...)
}

// Validate checks that an outcome is well formed
func (o Outcome) Validate() error {
	if o.Source == "" {
		return errors.Errorf("outcome has no source")
	}
	switch o.Kind {
	case Moved:
		if o.Destination == "" {
			return errors.Errorf("moved outcome for %s has no destination", o.Source)
		}
	case SkippedNotFound:
	case Failed:
		if o.Cause == nil {
			return errors.Errorf("failed outcome for %s has no cause", o.Source)
		}
	default:
		return errors.Errorf("outcome for %s has kind %s", o.Source, o.Kind)
	}
	return nil
}
