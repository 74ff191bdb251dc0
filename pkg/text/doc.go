/*
Package text refines a block of text line by line before relocation.

	+-----------+     +-----------+     +-------------+
	|  Filter   | --> | Transform | --> |  Normalize  |
	| date/regex|     | rm + repl |     | strip quotes|
	+-----------+     +-----------+     +-------------+

🎯 Purpose:
- Select lines by date prefix or by regular expression
- Remove literal phrases and replace literal substrings
- Strip quotes so paths can be handed to the relocation engine

🔄 Flow:
1. FilterByDate / FilterByPattern narrow the buffer (any number of times)
2. Transform removes phrases, then replaces Find with Replace
3. NormalizePaths runs last, right before relocation

Every function here is pure: it takes the text and the rule and returns new
lines. Buffer keeps the previous states so a caller can step back.
*/
package text
