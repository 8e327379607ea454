// Copyright 2022 The jackal Authors
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

package version

import "fmt"

// ApplicationVersion represents application version.
var ApplicationVersion = NewVersion(0, 1, 0)

// ClusterAPIVersion represents the cluster wire protocol version.
// Nodes advertising a different major version are not joined.
var ClusterAPIVersion = NewVersion(1, 0, 0)

// SemanticVersion is a major.minor.patch version.
type SemanticVersion struct {
	major, minor, patch uint
}

// NewVersion returns a new SemanticVersion.
func NewVersion(major, minor, patch uint) *SemanticVersion {
	return &SemanticVersion{major: major, minor: minor, patch: patch}
}

// Parse parses a 'vX.Y.Z' formatted version string.
func Parse(s string) (*SemanticVersion, error) {
	var v SemanticVersion
	if _, err := fmt.Sscanf(s, "v%d.%d.%d", &v.major, &v.minor, &v.patch); err != nil {
		return nil, fmt.Errorf("version: malformed version %q: %w", s, err)
	}
	return &v, nil
}

// Major returns version major value.
func (v *SemanticVersion) Major() uint { return v.major }

// Minor returns version minor value.
func (v *SemanticVersion) Minor() uint { return v.minor }

// Patch returns version patch value.
func (v *SemanticVersion) Patch() uint { return v.patch }

func (v *SemanticVersion) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.major, v.minor, v.patch)
}

// Compare returns -1, 0 or 1 when v is lower than, equal to or greater than v2.
func (v *SemanticVersion) Compare(v2 *SemanticVersion) int {
	for _, p := range [][2]uint{{v.major, v2.major}, {v.minor, v2.minor}, {v.patch, v2.patch}} {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}
	return 0
}

// IsCompatible tells whether v and v2 share the same major version.
func (v *SemanticVersion) IsCompatible(v2 *SemanticVersion) bool {
	return v.major == v2.major
}
