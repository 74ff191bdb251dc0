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

package operation_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/pathshift/pkg/operation"
	"github.com/walteh/pathshift/pkg/status"
	"github.com/walteh/pathshift/pkg/text"
)

// 🧪 createTestEnv creates a source tree and an empty destination root
func createTestEnv(t *testing.T, files ...string) (context.Context, string, string) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src")
	dst := filepath.Join(tmpDir, "out")

	for _, f := range files {
		path := filepath.Join(src, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("content of "+f), 0o644))
	}

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())
	return ctx, src, dst
}

func TestRelocate_MovedAndNotFound(t *testing.T) {
	ctx, src, dst := createTestEnv(t, "a/lib/x.jar")

	existing := filepath.Join(src, "a", "lib", "x.jar")
	missing := filepath.Join(src, "a", "lib", "missing.jar")

	var progress []string
	r, err := operation.NewRelocator(operation.Options{
		Destination: dst,
		Progress: func(moved, total int) {
			progress = append(progress, status.NewDefaultFormatter().FormatProgress(moved, total))
		},
	})
	require.NoError(t, err)

	report, err := r.Relocate(ctx, []string{existing, missing})
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 2)
	assert.Equal(t, status.Outcome{
		Source:      existing,
		SubPath:     "lib" + string(filepath.Separator) + "x.jar",
		Destination: filepath.Join(dst, "lib", "x.jar"),
		Kind:        status.Moved,
	}, report.Outcomes[0])
	assert.Equal(t, status.SkippedNotFound, report.Outcomes[1].Kind)
	assert.Equal(t, missing, report.Outcomes[1].Source)

	assert.Equal(t, status.Statistics{Total: 2, Moved: 1, Warn: 1, Error: 0}, report.Statistics)
	assert.True(t, report.Complete())
	assert.False(t, report.HasFailures())
	assert.Equal(t, []string{"moved 1/2 (50%)"}, progress)

	content, err := os.ReadFile(filepath.Join(dst, "lib", "x.jar"))
	require.NoError(t, err)
	assert.Equal(t, "content of a/lib/x.jar", string(content))
	assert.NoFileExists(t, existing)
	assert.NoDirExists(t, filepath.Join(dst, "lib", "missing.jar"))
}

func TestRelocate_StatisticsInvariant(t *testing.T) {
	ctx, src, dst := createTestEnv(t, "one/lib/a.jar", "two/lib/b.jar", "three/data/c.txt")

	lines := []string{
		"",
		"   ",
		filepath.Join(src, "one", "lib", "a.jar"),
		"no-separator.jar",
		filepath.Join(src, "two", "lib", "b.jar"),
		"\t" + filepath.Join(src, "gone", "lib", "z.jar") + "  ",
		filepath.Join(src, "three", "data", "c.txt"),
		"trailing/",
	}

	r, err := operation.NewRelocator(operation.Options{Destination: dst})
	require.NoError(t, err)

	report, err := r.Relocate(ctx, lines)
	require.NoError(t, err)

	s := report.Statistics
	assert.Equal(t, 6, s.Total, "empty lines must not count")
	assert.Equal(t, 6, report.Candidates)
	assert.Equal(t, s.Total, s.Moved+s.Warn+s.Error)
	assert.Equal(t, 3, s.Moved)
	assert.Equal(t, 1, s.Warn)
	assert.Equal(t, 2, s.Error)

	for _, o := range report.Outcomes {
		require.NoError(t, o.Validate())
		if o.Kind == status.Failed {
			assert.ErrorIs(t, o.Cause, operation.ErrShallowPath)
		}
	}

	assert.FileExists(t, filepath.Join(dst, "data", "c.txt"))
	assert.FileExists(t, filepath.Join(dst, "lib", "a.jar"))
	assert.FileExists(t, filepath.Join(dst, "lib", "b.jar"))
}

func TestRelocate_QuotedPathRoundTrip(t *testing.T) {
	ctx, src, dst := createTestEnv(t, "a/lib/x.jar")
	path := filepath.Join(src, "a", "lib", "x.jar")

	r, err := operation.NewRelocator(operation.Options{Destination: dst, DryRun: true})
	require.NoError(t, err)

	quoted, err := r.Relocate(ctx, text.NormalizePaths("'"+path+"'"))
	require.NoError(t, err)
	bare, err := r.Relocate(ctx, []string{path})
	require.NoError(t, err)

	require.Len(t, quoted.Outcomes, 1)
	require.Len(t, bare.Outcomes, 1)
	assert.Equal(t, bare.Outcomes[0].Destination, quoted.Outcomes[0].Destination)
	assert.Equal(t, filepath.Join(dst, "lib", "x.jar"), quoted.Outcomes[0].Destination)
}

func TestRelocate_DryRunLeavesFilesystemAlone(t *testing.T) {
	ctx, src, dst := createTestEnv(t, "a/lib/x.jar")
	path := filepath.Join(src, "a", "lib", "x.jar")

	r, err := operation.NewRelocator(operation.Options{Destination: dst, DryRun: true})
	require.NoError(t, err)

	report, err := r.Relocate(ctx, []string{path})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, status.Moved, report.Outcomes[0].Kind)
	assert.FileExists(t, path)
	assert.NoDirExists(t, dst)
}

func TestRelocate_OverwritesExistingDestination(t *testing.T) {
	ctx, src, dst := createTestEnv(t, "a/lib/x.jar")
	require.NoError(t, os.MkdirAll(filepath.Join(dst, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "lib", "x.jar"), []byte("old"), 0o644))

	r, err := operation.NewRelocator(operation.Options{Destination: dst})
	require.NoError(t, err)

	report, err := r.Relocate(ctx, []string{filepath.Join(src, "a", "lib", "x.jar")})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Statistics.Moved)

	content, err := os.ReadFile(filepath.Join(dst, "lib", "x.jar"))
	require.NoError(t, err)
	assert.Equal(t, "content of a/lib/x.jar", string(content))
}

func TestRelocate_FailedMoveKeepsGoing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions behave differently on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	ctx, src, dst := createTestEnv(t, "locked/lib/a.jar", "open/lib/b.jar")
	locked := filepath.Join(src, "locked", "lib")
	require.NoError(t, os.Chmod(locked, 0o555))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	r, err := operation.NewRelocator(operation.Options{Destination: dst})
	require.NoError(t, err)

	report, err := r.Relocate(ctx, []string{
		filepath.Join(locked, "a.jar"),
		filepath.Join(src, "open", "lib", "b.jar"),
	})
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 2)
	assert.Equal(t, status.Failed, report.Outcomes[0].Kind)
	assert.Contains(t, report.Outcomes[0].CauseMessage(), "permission denied")
	assert.Equal(t, status.Moved, report.Outcomes[1].Kind)
	assert.True(t, report.HasFailures())
	assert.Equal(t, status.Statistics{Total: 2, Moved: 1, Error: 1}, report.Statistics)
}

func TestRelocate_Workers(t *testing.T) {
	var files, lines []string
	for i := 0; i < 40; i++ {
		f := filepath.ToSlash(filepath.Join("d"+strings.Repeat("x", i%5), "lib", "f"+string(rune('a'+i%26))+strings.Repeat("1", i/26)+".jar"))
		files = append(files, f)
	}
	ctx, src, dst := createTestEnv(t, files...)
	for _, f := range files {
		lines = append(lines, filepath.Join(src, filepath.FromSlash(f)))
	}
	lines = append(lines, filepath.Join(src, "nope", "lib", "missing.jar"))

	var last int
	r, err := operation.NewRelocator(operation.Options{
		Destination: dst,
		Workers:     8,
		Progress: func(moved, total int) {
			assert.Equal(t, last+1, moved, "progress must be reported by a single owner in order")
			assert.Equal(t, 41, total)
			last = moved
		},
	})
	require.NoError(t, err)

	report, err := r.Relocate(ctx, lines)
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 41)
	for i, o := range report.Outcomes {
		assert.Equal(t, strings.TrimSpace(lines[i]), o.Source, "outcomes keep input order")
	}
	assert.True(t, report.Statistics.Consistent())
	assert.Equal(t, 1, report.Statistics.Warn)
	assert.Equal(t, 40, last)
}

func TestRelocate_InputValidation(t *testing.T) {
	_, err := operation.NewRelocator(operation.Options{Destination: "  "})
	require.ErrorIs(t, err, operation.ErrNoDestination)

	_, err = operation.NewRelocator(operation.Options{Destination: "/out", Workers: -1})
	require.Error(t, err)

	_, err = operation.NewRelocator(operation.Options{Destination: "/out", MoveTimeout: -time.Second})
	require.Error(t, err)

	r, err := operation.NewRelocator(operation.Options{Destination: "/out"})
	require.NoError(t, err)

	report, err := r.Relocate(context.Background(), []string{"", "  ", "\t"})
	require.ErrorIs(t, err, operation.ErrEmptyBuffer)
	assert.Nil(t, report)
}

func TestRelocate_DotParentLandsInRoot(t *testing.T) {
	ctx, src, dst := createTestEnv(t, "x.jar")

	r, err := operation.NewRelocator(operation.Options{Destination: dst})
	require.NoError(t, err)

	report, err := r.Relocate(ctx, []string{src + "/./x.jar"})
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, status.Moved, report.Outcomes[0].Kind)
	assert.Equal(t, "./x.jar", report.Outcomes[0].SubPath)
	assert.Equal(t, filepath.Join(dst, "x.jar"), report.Outcomes[0].Destination)
	assert.FileExists(t, filepath.Join(dst, "x.jar"))
	assert.NoFileExists(t, filepath.Join(src, "x.jar"))
}

func TestRelocate_MoveTimeout(t *testing.T) {
	ctx, src, dst := createTestEnv(t, "a/lib/x.jar", "a/lib/y.jar")

	r, err := operation.NewRelocator(operation.Options{Destination: dst, MoveTimeout: time.Nanosecond})
	require.NoError(t, err)

	report, err := r.Relocate(ctx, []string{
		filepath.Join(src, "a", "lib", "x.jar"),
		filepath.Join(src, "a", "lib", "y.jar"),
	})
	require.NoError(t, err, "a timed out move does not abort the run")

	require.Len(t, report.Outcomes, 2)
	for _, o := range report.Outcomes {
		assert.Equal(t, status.Failed, o.Kind)
		require.ErrorIs(t, o.Cause, context.DeadlineExceeded)
		assert.FileExists(t, o.Source)
	}
	assert.Equal(t, status.Statistics{Total: 2, Error: 2}, report.Statistics)
	assert.True(t, report.Statistics.Consistent())
	assert.True(t, report.Complete())
}

func TestRelocate_DestinationIsAFile(t *testing.T) {
	ctx, src, dst := createTestEnv(t, "a/lib/x.jar")
	require.NoError(t, os.WriteFile(dst, []byte("not a dir"), 0o644))

	r, err := operation.NewRelocator(operation.Options{Destination: dst})
	require.NoError(t, err)

	report, err := r.Relocate(ctx, []string{filepath.Join(src, "a", "lib", "x.jar")})
	require.ErrorIs(t, err, operation.ErrDestinationUnusable)
	require.NotNil(t, report)
	assert.Empty(t, report.Outcomes)
	assert.FileExists(t, filepath.Join(src, "a", "lib", "x.jar"))
}

func TestRelocate_CancelledRunKeepsCollectedOutcomes(t *testing.T) {
	ctx, src, dst := createTestEnv(t, "a/lib/x.jar", "a/lib/y.jar", "a/lib/z.jar")
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r, err := operation.NewRelocator(operation.Options{
		Destination: dst,
		Progress: func(moved, total int) {
			if moved == 1 {
				cancel()
			}
		},
	})
	require.NoError(t, err)

	report, err := r.Relocate(ctx, []string{
		filepath.Join(src, "a", "lib", "x.jar"),
		filepath.Join(src, "a", "lib", "y.jar"),
		filepath.Join(src, "a", "lib", "z.jar"),
	})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)

	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, status.Moved, report.Outcomes[0].Kind)
	assert.False(t, report.Complete())
	assert.True(t, report.Statistics.Consistent())
	assert.FileExists(t, filepath.Join(src, "a", "lib", "z.jar"))
}

func TestReport_Entries(t *testing.T) {
	ctx, src, dst := createTestEnv(t, "a/lib/x.jar")

	r, err := operation.NewRelocator(operation.Options{Destination: dst})
	require.NoError(t, err)

	report, err := r.Relocate(ctx, []string{filepath.Join(src, "a", "lib", "x.jar"), "shallow.jar"})
	require.NoError(t, err)

	entries := report.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, status.SeverityInfo, entries[0].Severity)
	assert.Equal(t, status.SeverityError, entries[1].Severity)
	assert.Contains(t, entries[1].Message, "shallow.jar")
	assert.Equal(t, status.Entry{Severity: status.SeverityError, Message: "1 files failed to move"}, entries[3])
}

func TestRelocate_DestinationCannotBeCreated(t *testing.T) {
	ctx, src, dst := createTestEnv(t, "a/lib/x.jar")
	require.NoError(t, os.WriteFile(dst, []byte("not a dir"), 0o644))

	r, err := operation.NewRelocator(operation.Options{Destination: filepath.Join(dst, "nested")})
	require.NoError(t, err)

	report, err := r.Relocate(ctx, []string{filepath.Join(src, "a", "lib", "x.jar")})
	require.ErrorIs(t, err, operation.ErrDestinationUnusable)
	require.NotNil(t, report)
	assert.Empty(t, report.Outcomes)
}
