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

package commands

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// stdinArg names standard input on the command line
const stdinArg = "-"

// hasGlobMeta reports whether arg should be expanded as a glob
func hasGlobMeta(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

// 📥 readInput returns the text a command works on. With no argument, or a
// single "-", it reads in. Otherwise every argument is a file or a doublestar
// pattern and the contents are concatenated in argument order.
func readInput(ctx context.Context, in io.Reader, args []string) (string, error) {
	logger := zerolog.Ctx(ctx)

	if len(args) == 0 || (len(args) == 1 && args[0] == stdinArg) {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", errors.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	paths, err := expandInputs(args)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Errorf("reading input file: %w", err)
		}
		logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("read input file")

		sb.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// expandInputs resolves glob arguments into sorted file lists
func expandInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if arg == stdinArg {
			return nil, errors.Errorf("%q cannot be combined with file arguments", stdinArg)
		}
		if !hasGlobMeta(arg) {
			paths = append(paths, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("pattern %q matched no files", arg)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}
