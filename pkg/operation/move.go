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

package operation

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// rename is swapped in tests to simulate cross-device moves.
var rename = os.Rename

// 🚚 Move renames src to dst. When the two are on different volumes it falls
// back to copying the file and removing the source. An existing dst is
// replaced.
func Move(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("moving %s: %w", src, err)
	}
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return errors.Errorf("moving %s: %w", src, context.DeadlineExceeded)
	}

	err := rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errCrossDevice) {
		return errors.Errorf("renaming: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("source", src).Str("destination", dst).Msg("cross-device move, copying")

	if err := copyFile(ctx, src, dst); err != nil {
		os.Remove(dst)
		return errors.Errorf("copying across devices: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return errors.Errorf("removing source after copy: %w", err)
	}
	return nil
}

// copyFile copies src to dst keeping the permission bits and modification
// time. The copy stops when ctx is done.
func copyFile(ctx context.Context, src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("reading source info: %w", err)
	}
	if info.IsDir() {
		return errors.Errorf("%s is a directory", src)
	}

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, &contextReader{ctx: ctx, r: source}); err != nil {
		destination.Close()
		return errors.Errorf("copying file: %w", err)
	}
	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("preserving modification time: %w", err)
	}
	return nil
}

// contextReader fails reads once its context is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
