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

	"golang.org/x/sync/errgroup"
)

// 🏃 runner fans work out to a bounded number of workers and hands every
// result to a single collector running on the caller's goroutine
type runner struct {
	workers int
}

// 🏗️ newRunner creates a runner; fewer than one worker means one
func newRunner(workers int) *runner {
	if workers < 1 {
		workers = 1
	}
	return &runner{workers: workers}
}

type indexed[T any] struct {
	index int
	value T
}

// run calls work for indexes 0..n-1 and collect for every finished item.
// Dispatch stops once ctx is done; items already started still finish and are
// collected. It returns the number of items dispatched.
func run[T any](ctx context.Context, r *runner, n int, work func(ctx context.Context, i int) T, collect func(i int, v T)) int {
	if r.workers == 1 {
		return runSync(ctx, n, work, collect)
	}
	return runAsync(ctx, r.workers, n, work, collect)
}

// 🔄 runSync processes items one after another
func runSync[T any](ctx context.Context, n int, work func(ctx context.Context, i int) T, collect func(i int, v T)) int {
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			return i
		}
		collect(i, work(ctx, i))
	}
	return n
}

// ⚡ runAsync processes items on a worker pool
func runAsync[T any](ctx context.Context, workers, n int, work func(ctx context.Context, i int) T, collect func(i int, v T)) int {
	results := make(chan indexed[T])
	dispatched := make(chan int, 1)

	go func() {
		var g errgroup.Group
		g.SetLimit(workers)

		i := 0
		for ; i < n; i++ {
			if ctx.Err() != nil {
				break
			}
			i := i
			g.Go(func() error {
				results <- indexed[T]{index: i, value: work(ctx, i)}
				return nil
			})
		}
		dispatched <- i

		_ = g.Wait()
		close(results)
	}()

	for res := range results {
		collect(res.index, res.value)
	}
	return <-dispatched
}
