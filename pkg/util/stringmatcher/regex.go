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

import (
	"regexp"
)

// RegexMatcher matches strings against a regular expression.
// The expression must match the whole string.
type RegexMatcher struct {
	regex *regexp.Regexp
}

// NewRegexMatcher returns a new initialized RegexMatcher.
func NewRegexMatcher(expr string) (*RegexMatcher, error) {
	regex, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, err
	}
	return &RegexMatcher{regex: regex}, nil
}

// Matches returns true if str matches the matcher regular expression.
func (rm *RegexMatcher) Matches(str string) bool {
	return rm.regex.MatchString(str)
}
