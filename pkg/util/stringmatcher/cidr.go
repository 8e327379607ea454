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
	"fmt"
	"net"
)

// CIDRMatcher matches textual IP addresses contained in a set of networks.
type CIDRMatcher struct {
	nets []*net.IPNet
}

// NewCIDRMatcher returns a new initialized CIDRMatcher.
func NewCIDRMatcher(blocks []string) (*CIDRMatcher, error) {
	m := &CIDRMatcher{}
	for _, b := range blocks {
		_, ipNet, err := net.ParseCIDR(b)
		if err != nil {
			return nil, fmt.Errorf("stringmatcher: invalid CIDR block %q: %w", b, err)
		}
		m.nets = append(m.nets, ipNet)
	}
	return m, nil
}

// Matches returns true if addr is an IP address within any of the matcher networks.
func (cm *CIDRMatcher) Matches(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range cm.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
