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
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/pathshift/pkg/operation"
	"github.com/walteh/pathshift/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// SchemaVersion is written into every journal file
const SchemaVersion = "1.0.0"

// State is the on-disk journal of relocation runs
type State struct {
	SchemaVersion string    `json:"schema_version"`
	LastUpdated   time.Time `json:"last_updated"`

	// Runs holds one entry per recorded run, oldest first
	Runs []RunState `json:"runs"`
}

// RunState records a single run
type RunState struct {
	ID          string            `json:"id"`
	Destination string            `json:"destination"`
	Started     time.Time         `json:"started"`
	Finished    time.Time         `json:"finished"`
	Statistics  status.Statistics `json:"statistics"`

	// Moves lists every file that reached its destination
	Moves []MoveState `json:"moves"`

	// Problems lists the paths that were not moved, with the reason
	Problems []ProblemState `json:"problems,omitempty"`
}

// MoveState is a file moved by a run
type MoveState struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// ProblemState is a path a run could not move
type ProblemState struct {
	Source string `json:"source"`
	Kind   string `json:"kind"`
	Cause  string `json:"cause,omitempty"`
}

// LoadState loads the journal at path. A missing file yields an empty journal.
func LoadState(ctx context.Context, path string) (*State, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading state")

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &State{SchemaVersion: SchemaVersion}, nil
	}
	if err != nil {
		return nil, errors.Errorf("reading state file: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Errorf("parsing state file: %w", err)
	}
	if s.SchemaVersion != SchemaVersion {
		return nil, errors.Errorf("unsupported state schema %q, want %q", s.SchemaVersion, SchemaVersion)
	}
	for _, r := range s.Runs {
		if !r.Statistics.Consistent() {
			return nil, errors.Errorf("state file run %s: inconsistent statistics %+v", r.ID, r.Statistics)
		}
	}
	return &s, nil
}

// WriteState writes the journal to path, replacing it atomically
func WriteState(ctx context.Context, path string, s *State) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Int("runs", len(s.Runs)).Msg("writing state")

	data, err := json.MarshalIndent(s, "", "\t")
	if err != nil {
		return errors.Errorf("encoding state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pathshift-state-*")
	if err != nil {
		return errors.Errorf("creating temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return errors.Errorf("writing temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Errorf("replacing state file: %w", err)
	}
	return nil
}

// PutRun adds report as the newest run. Dry runs are not recorded and
// return false. A report with a malformed outcome or statistics that do not
// add up is rejected and leaves the journal unchanged.
func (s *State) PutRun(ctx context.Context, report *operation.Report) (bool, error) {
	logger := zerolog.Ctx(ctx)

	if report.DryRun {
		logger.Debug().Str("run_id", report.RunID.String()).Msg("dry run, not recording")
		return false, nil
	}

	if !report.Statistics.Consistent() {
		return false, errors.Errorf("run %s: inconsistent statistics %+v", report.RunID, report.Statistics)
	}
	for _, o := range report.Outcomes {
		if err := o.Validate(); err != nil {
			return false, errors.Errorf("run %s: %w", report.RunID, err)
		}
	}

	run := RunState{
		ID:          report.RunID.String(),
		Destination: report.Destination,
		Started:     report.Started,
		Finished:    report.Finished,
		Statistics:  report.Statistics,
	}
	for _, o := range report.Outcomes {
		if o.Kind == status.Moved {
			run.Moves = append(run.Moves, MoveState{Source: o.Source, Destination: o.Destination})
			continue
		}
		run.Problems = append(run.Problems, ProblemState{Source: o.Source, Kind: o.Kind.String(), Cause: o.CauseMessage()})
	}

	s.Runs = append(s.Runs, run)
	s.LastUpdated = report.Finished
	logger.Debug().Str("run_id", run.ID).Int("moves", len(run.Moves)).Msg("recorded run")
	return true, nil
}

// Run returns the run with the given id
func (s *State) Run(id string) (RunState, bool) {
	for _, r := range s.Runs {
		if r.ID == id {
			return r, true
		}
	}
	return RunState{}, false
}

// Record appends report to the journal at path
func Record(ctx context.Context, path string, report *operation.Report) error {
	s, err := LoadState(ctx, path)
	if err != nil {
		return err
	}
	recorded, err := s.PutRun(ctx, report)
	if err != nil {
		return errors.Errorf("recording run: %w", err)
	}
	if !recorded {
		return nil
	}
	return WriteState(ctx, path, s)
}
