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

package state

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/pathshift/pkg/operation"
	"github.com/walteh/pathshift/pkg/status"
)

func setupTestLogger(t *testing.T) context.Context {
	// Create a logger that writes to the test log
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func testReport(dryRun bool) *operation.Report {
	started := time.Date(2024, 6, 28, 8, 4, 22, 0, time.UTC)
	outcomes := []status.Outcome{
		{Source: "/a/lib/x.jar", SubPath: "lib/x.jar", Destination: "/out/lib/x.jar", Kind: status.Moved},
		{Source: "/a/lib/missing.jar", SubPath: "lib/missing.jar", Destination: "/out/lib/missing.jar", Kind: status.SkippedNotFound},
		{Source: "x.jar", Kind: status.Failed, Cause: errors.New("path has no parent directory")},
	}
	return &operation.Report{
		RunID:       uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		Destination: "/out",
		DryRun:      dryRun,
		Candidates:  3,
		Outcomes:    outcomes,
		Statistics:  status.Tally(outcomes),
		Started:     started,
		Finished:    started.Add(time.Second),
	}
}

func TestLoadState(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("load_nonexistent_creates_clean", func(t *testing.T) {
		s, err := LoadState(ctx, filepath.Join(t.TempDir(), "journal.json"))
		require.NoError(t, err, "loading nonexistent state")
		assert.Equal(t, SchemaVersion, s.SchemaVersion)
		assert.Empty(t, s.Runs)
	})

	t.Run("rejects_unknown_schema", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "journal.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"schema_version":"0.1.0"}`), 0o644))

		_, err := LoadState(ctx, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported state schema")
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "journal.json")
		require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

		_, err := LoadState(ctx, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing state file")
	})

	t.Run("rejects_inconsistent_statistics", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "journal.json")
		data := `{"schema_version":"1.0.0","runs":[{"id":"r1","statistics":{"total":3,"moved":1,"warn":0,"error":0}}]}`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		_, err := LoadState(ctx, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "inconsistent statistics")
	})
}

func TestRecord(t *testing.T) {
	ctx := setupTestLogger(t)
	path := filepath.Join(t.TempDir(), "nested", "journal.json")

	require.NoError(t, Record(ctx, path, testReport(false)))
	require.NoError(t, Record(ctx, path, testReport(true)), "dry runs are accepted but skipped")

	s, err := LoadState(ctx, path)
	require.NoError(t, err)
	require.Len(t, s.Runs, 1)

	run, ok := s.Run("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.True(t, ok)
	assert.Equal(t, "/out", run.Destination)
	assert.Equal(t, status.Statistics{Total: 3, Moved: 1, Warn: 1, Error: 1}, run.Statistics)
	assert.Equal(t, []MoveState{{Source: "/a/lib/x.jar", Destination: "/out/lib/x.jar"}}, run.Moves)
	assert.Equal(t, []ProblemState{
		{Source: "/a/lib/missing.jar", Kind: "not-found"},
		{Source: "x.jar", Kind: "failed", Cause: "path has no parent directory"},
	}, run.Problems)
	assert.True(t, s.LastUpdated.Equal(run.Finished))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")

	_, ok = s.Run("missing")
	assert.False(t, ok)
}

func TestPutRun_RejectsMalformedReport(t *testing.T) {
	ctx := setupTestLogger(t)

	tests := []struct {
		name    string
		mutate  func(r *operation.Report)
		wantErr string
	}{
		{
			name:    "statistics_do_not_add_up",
			mutate:  func(r *operation.Report) { r.Statistics.Moved++ },
			wantErr: "inconsistent statistics",
		},
		{
			name:    "failed_outcome_without_cause",
			mutate:  func(r *operation.Report) { r.Outcomes[2].Cause = nil },
			wantErr: "has no cause",
		},
		{
			name:    "moved_outcome_without_destination",
			mutate:  func(r *operation.Report) { r.Outcomes[0].Destination = "" },
			wantErr: "has no destination",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := testReport(false)
			tt.mutate(report)

			s := &State{SchemaVersion: SchemaVersion}
			recorded, err := s.PutRun(ctx, report)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.False(t, recorded)
			assert.Empty(t, s.Runs, "a rejected run leaves the journal unchanged")

			path := filepath.Join(t.TempDir(), "journal.json")
			require.Error(t, Record(ctx, path, report))
			_, err = os.Stat(path)
			assert.ErrorIs(t, err, os.ErrNotExist, "nothing is written for a rejected run")
		})
	}
}
