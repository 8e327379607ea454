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

// Package stringmatcher provides the remote address predicates used by connection accept policies.
package stringmatcher

// Matcher defines a generic string matcher.
type Matcher interface {
	// Matches returns true in case str matches.
	Matches(str string) bool
}

type anyMatcher struct{}

// Any is a matcher that accepts every string.
var Any Matcher = anyMatcher{}

func (anyMatcher) Matches(_ string) bool { return true }

type orMatcher []Matcher

// Or returns a matcher satisfied when any of ms matches.
// An empty set never matches.
func Or(ms ...Matcher) Matcher { return orMatcher(ms) }

func (om orMatcher) Matches(str string) bool {
	for _, m := range om {
		if m.Matches(str) {
			return true
		}
	}
	return false
}
