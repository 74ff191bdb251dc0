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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrShallowPath is the cause for paths without a usable parent directory.
var ErrShallowPath = errors.Base("path has no parent directory")

// 📁 SubPath is the parent directory and file name of a source path
type SubPath struct {
	Parent    string
	Name      string
	Separator string // "/" or "\"
}

// String joins the segments with the source's own separator
func (s SubPath) String() string {
	return s.Parent + s.Separator + s.Name
}

// ParseSubPath extracts the last two segments of path. A forward slash wins
// over a backslash when deciding the separator. A "." parent is kept and puts
// the file directly under the destination root. Paths with no separator, an
// empty segment, a ".." parent, or a volume name as parent are rejected with
// ErrShallowPath.
func ParseSubPath(path string) (SubPath, error) {
	sep := "/"
	if !strings.Contains(path, sep) {
		sep = `\`
		if !strings.Contains(path, sep) {
			return SubPath{}, errors.Errorf("%s: %w", path, ErrShallowPath)
		}
	}

	parts := strings.Split(path, sep)
	sp := SubPath{
		Parent:    parts[len(parts)-2],
		Name:      parts[len(parts)-1],
		Separator: sep,
	}

	switch {
	case sp.Name == "", sp.Name == ".", sp.Name == "..":
		return SubPath{}, errors.Errorf("%s: no file name: %w", path, ErrShallowPath)
	case sp.Parent == "", sp.Parent == "..", strings.HasSuffix(sp.Parent, ":"):
		return SubPath{}, errors.Errorf("%s: %w", path, ErrShallowPath)
	}
	return sp, nil
}
