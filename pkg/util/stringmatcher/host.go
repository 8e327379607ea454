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

package stringmatcher

import "strings"

const wildcardPrefix = "*."

// HostMatcher matches host names and literal addresses, case insensitively.
// A '*.' prefixed pattern matches every subdomain of the remaining suffix, but not the suffix itself.
type HostMatcher struct {
	exact    map[string]struct{}
	suffixes []string
}

// NewHostMatcher returns a new initialized HostMatcher.
func NewHostMatcher(patterns []string) *HostMatcher {
	m := &HostMatcher{exact: make(map[string]struct{}, len(patterns))}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if strings.HasPrefix(p, wildcardPrefix) {
			m.suffixes = append(m.suffixes, p[1:])
			continue
		}
		m.exact[p] = struct{}{}
	}
	return m
}

// Matches returns true if host matches any of the matcher patterns.
func (hm *HostMatcher) Matches(host string) bool {
	host = strings.ToLower(host)
	if _, ok := hm.exact[host]; ok {
		return true
	}
	for _, suffix := range hm.suffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}
