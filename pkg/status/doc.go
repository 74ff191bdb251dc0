/*
Package status defines what a relocation run reports.

	+-----------+      +------------+      +-----------+
	|  Outcome  | ---> | Statistics | ---> |  Entries  |
	| per path  |      |   Tally    |      | sev + msg |
	+-----------+      +------------+      +-----------+

🎯 Purpose:
- Classify each path as moved, not found, or failed
- Derive run statistics from the outcome sequence only
- Word outcomes, progress and summaries through a Formatter

Statistics always satisfy Moved + Warn + Error == Total. Rendering with
colors lives in FormatOutcomeLine and FormatEntryLine; everything else is
plain data a caller can display however it likes.
*/
package status
