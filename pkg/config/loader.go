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

package config

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultFileNames are looked up in order by LoadDefault
var DefaultFileNames = []string{
	".pathshift.yaml",
	".pathshift.yml",
	".pathshift.json",
	".pathshift.hcl",
}

// environ is swapped in tests
var environ = os.Environ

// 🔎 LoadDefault loads the first default config file found in dir. No file
// at all is not an error and yields Default().
func LoadDefault(ctx context.Context, dir string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Errorf("checking %s: %w", path, err)
		}
		return Load(ctx, path)
	}

	logger.Debug().Str("dir", dir).Msg("no config file found, using defaults")
	return Default(), nil
}
