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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name             string
		text             string
		rule             Rule
		want             string
		wantRemovals     int
		wantReplacements int
		wantModified     bool
	}{
		{
			name: "phrases_then_replace",
			text: "Marking file './lib/x.jar' to be deleted on exit of JVM",
			rule: Rule{
				Phrases: "Marking file, to be deleted on exit of JVM",
				Find:    "./lib/",
				Replace: "D:/data/lib/",
			},
			want:             "'D:/data/lib/x.jar' ",
			wantRemovals:     2,
			wantReplacements: 1,
			wantModified:     true,
		},
		{
			name:         "phrase_removal_is_literal",
			text:         "a.b a+b axb",
			rule:         Rule{Phrases: "a.b, a+b"},
			want:         "axb",
			wantRemovals: 2,
			wantModified: true,
		},
		{
			name:         "phrase_swallows_following_whitespace",
			text:         "DROP   me DROP\tand DROP",
			rule:         Rule{Phrases: "DROP"},
			want:         "me and ",
			wantRemovals: 3,
			wantModified: true,
		},
		{
			name: "empty_phrase_entries_skipped",
			text: "keep, this",
			rule: Rule{Phrases: " , ,,"},
			want: "keep, this",
		},
		{
			name: "replace_needs_both_sides",
			text: "./lib/a.jar",
			rule: Rule{Find: "./lib/"},
			want: "./lib/a.jar",
		},
		{
			name:         "removal_happens_before_replacement",
			text:         "foo bar",
			rule:         Rule{Phrases: "foo", Find: "foo", Replace: "baz"},
			want:         "bar",
			wantRemovals: 1,
			wantModified: true,
		},
		{
			name:         "empty_lines_preserved",
			text:         "gone\n\nkeep\ngone",
			rule:         Rule{Phrases: "gone"},
			want:         "\n\nkeep\n",
			wantRemovals: 2,
			wantModified: true,
		},
		{
			name: "zero_rule",
			text: "unchanged\ntext",
			rule: Rule{},
			want: "unchanged\ntext",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Transform(tt.text, tt.rule)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text())
			assert.Equal(t, tt.wantRemovals, res.Removals, "removals")
			assert.Equal(t, tt.wantReplacements, res.Replacements, "replacements")
			assert.Equal(t, tt.wantModified, res.WasModified, "was modified")
		})
	}
}

func TestTransform_JVMLogToPaths(t *testing.T) {
	filtered, err := FilterByPattern(testContext(t), jvmLog, `(Marking)\s(file)`)
	require.NoError(t, err)

	res, err := Transform(strings.Join(filtered, "\n"), Rule{
		Phrases: "Marking file, to be deleted on exit of JVM",
		Find:    "./lib/",
		Replace: "D:/data/lib/",
	})
	require.NoError(t, err)

	var paths []string
	for _, line := range NormalizePaths(res.Text()) {
		paths = append(paths, strings.TrimSpace(line))
	}
	assert.Equal(t, []string{
		"D:/data/lib/scriptella-uber-1.4.4.jar",
		"D:/data/lib/xmlunit-core-2.9.0.jar",
		"D:/data/lib/mongodb-driver-core-4.10.2.jar",
	}, paths)
}

func TestRule_PhraseList(t *testing.T) {
	r := Rule{Phrases: "Marking file, ', to be deleted on exit of JVM,  "}
	assert.Equal(t, []string{"Marking file", "'", "to be deleted on exit of JVM"}, r.PhraseList())
	assert.False(t, r.IsZero())
	assert.True(t, Rule{Find: "x"}.IsZero())
}

func TestSwapSeparator(t *testing.T) {
	assert.Equal(t, `D:\data\lib\`, SwapSeparator("D:/data/lib/"))
	assert.Equal(t, "D:/data/lib/", SwapSeparator(`D:\data\lib\`))
	assert.Equal(t, "plain", SwapSeparator("plain"))
	assert.Equal(t, "D:/data/lib/", SwapSeparator(SwapSeparator("D:/data/lib/")))
}

func TestNormalizePaths(t *testing.T) {
	got := NormalizePaths("'/a/lib/x.jar'\nit's\n")
	assert.Equal(t, []string{"/a/lib/x.jar", "its"}, got)
}

func TestPresets(t *testing.T) {
	p, err := LookupPreset("jar-cleanup")
	require.NoError(t, err)
	assert.Equal(t, `(Marking)\s(file)`, p.Pattern)
	assert.Equal(t, "./lib/", p.Rule.Find)
	assert.Empty(t, p.Rule.Replace)

	_, err = LookupPreset("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jar-cleanup")
}

func TestBuffer(t *testing.T) {
	b := NewBuffer("one\ntwo\n")
	assert.Equal(t, 2, b.Len())
	assert.False(t, b.Undo())

	b.SetLines([]string{"two"})
	b.Set("three")
	assert.Equal(t, "three", b.Text())
	assert.Equal(t, 2, b.Depth())

	require.True(t, b.Undo())
	assert.Equal(t, "two", b.Text())
	require.True(t, b.Undo())
	assert.Equal(t, "one\ntwo\n", b.Text())
	assert.False(t, b.Undo())

	assert.True(t, NewBuffer(" \n\t").IsEmpty())
}
