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

// NormalizePaths removes every single quote from each line of text. Log
// sources quote paths and relocation needs them bare.
func NormalizePaths(text string) []string {
	lines := Lines(text)
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(line, "'", "")
	}
	return lines
}
