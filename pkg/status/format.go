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
	"fmt"
)

// Formatter defines how outcomes, progress and summaries are worded
type Formatter interface {
	// FormatOutcome formats a single outcome
	FormatOutcome(o Outcome) string

	// FormatProgress formats a progress message
	FormatProgress(moved, total int) string

	// FormatSummary formats the end-of-run summary
	FormatSummary(s Statistics) []Entry
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatOutcome formats an outcome as a plain sentence
func (f *DefaultFormatter) FormatOutcome(o Outcome) string {
	switch o.Kind {
	case Moved:
		return fmt.Sprintf("Moved %s to %s", o.Source, o.Destination)
	case SkippedNotFound:
		return fmt.Sprintf("WARN: %s not found, skipping", o.Source)
	default:
		return fmt.Sprintf("ERROR: %s: %s", o.Source, o.CauseMessage())
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFormatter) FormatProgress(moved, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if moved > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(moved) / float64(total) * 100
	}
	return fmt.Sprintf("moved %d/%d (%.0f%%)", moved, total, percentage)
}

// FormatSummary formats the results block printed after a run
func (f *DefaultFormatter) FormatSummary(s Statistics) []Entry {
	entries := []Entry{{
		Severity: SeverityInfo,
		Message:  fmt.Sprintf("Task finished, results: %d processed, %d moved", s.Total, s.Moved),
	}}
	if s.Error > 0 {
		entries = append(entries, Entry{Severity: SeverityError, Message: fmt.Sprintf("%d files failed to move", s.Error)})
	}
	if s.Warn > 0 {
		entries = append(entries, Entry{Severity: SeverityWarn, Message: fmt.Sprintf("%d files were not found", s.Warn)})
	}
	return entries
}
