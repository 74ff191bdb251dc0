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

import "strings"

// 📝 Buffer is the working text with an undo history
type Buffer struct {
	current string
	history []string
}

// NewBuffer creates a buffer holding text
func NewBuffer(text string) *Buffer {
	return &Buffer{current: text}
}

// Text returns the current content
func (b *Buffer) Text() string {
	return b.current
}

// Lines returns the current content split into lines
func (b *Buffer) Lines() []string {
	return Lines(b.current)
}

// Len returns the number of lines
func (b *Buffer) Len() int {
	return len(b.Lines())
}

// IsEmpty reports whether the buffer holds only whitespace
func (b *Buffer) IsEmpty() bool {
	return strings.TrimSpace(b.current) == ""
}

// Set replaces the content and records the previous state
func (b *Buffer) Set(text string) {
	b.history = append(b.history, b.current)
	b.current = text
}

// SetLines replaces the content with lines joined by newlines
func (b *Buffer) SetLines(lines []string) {
	b.Set(strings.Join(lines, "\n"))
}

// Undo restores the previous state. It returns false when there is nothing
// to undo.
func (b *Buffer) Undo() bool {
	if len(b.history) == 0 {
		return false
	}
	b.current = b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	return true
}

// Depth returns the number of states that can be undone
func (b *Buffer) Depth() int {
	return len(b.history)
}
