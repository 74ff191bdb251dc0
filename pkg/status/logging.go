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
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	indent      = 2  // spaces before each outcome line
	kindWidth   = 10 // width of the kind column
	sourceWidth = 40 // width of the source column
)

// 🎯 FormatOutcomeLine formats an outcome as a colored, column aligned line
func FormatOutcomeLine(o Outcome) string {
	var prefix, kind, detail string
	switch o.Kind {
	case Moved:
		prefix = color.GreenString("✓")
		kind = color.GreenString("%-*s", kindWidth, o.Kind)
		detail = "→ " + color.CyanString("%s", o.Destination)
	case SkippedNotFound:
		prefix = color.YellowString("⚠")
		kind = color.YellowString("%-*s", kindWidth, o.Kind)
		detail = color.HiBlackString("skipping")
	default:
		prefix = color.RedString("✗")
		kind = color.RedString("%-*s", kindWidth, o.Kind)
		detail = color.RedString("%s", o.CauseMessage())
	}

	return fmt.Sprintf("%s%s %s %-*s %s",
		strings.Repeat(" ", indent),
		prefix,
		kind,
		sourceWidth, o.Source,
		detail,
	)
}

// FormatEntryLine formats a report entry with a colored severity tag
func FormatEntryLine(e Entry) string {
	switch e.Severity {
	case SeverityWarn:
		return color.YellowString("WARNING:") + " " + e.Message
	case SeverityError:
		return color.RedString("ERROR:") + " " + e.Message
	default:
		return e.Message
	}
}
