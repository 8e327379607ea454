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

package acceptpolicy

import (
	"fmt"

	"github.com/ortuman/jackal-muc/pkg/util/stringmatcher"
)

const (
	basicType   = "basic"
	andType     = "and"
	orType      = "or"
	notType     = "not"
	xorType     = "xor"
	addressType = "address"
)

// Config defines a policy expression tree node.
type Config struct {
	// Type is the policy node type. Empty type accepts every connection.
	Type string `fig:"type"`

	// Accept is the constant value of a basic policy.
	Accept bool `fig:"accept"`

	// Hosts is the list of matching hosts of an address policy. '*.' prefixed entries match subdomains.
	Hosts []string `fig:"hosts"`

	// CIDRs is the list of matching networks of an address policy.
	CIDRs []string `fig:"cidrs"`

	// Regex is the matching expression of an address policy. It takes precedence over Hosts and CIDRs.
	Regex string `fig:"regex"`

	// Policies contains the child nodes of a composite policy.
	Policies []Config `fig:"policies"`
}

// Parse builds a policy tree out of cfg.
// And and or nodes accept two or more children, folded from left to right.
func Parse(cfg Config) (Policy, error) {
	switch cfg.Type {
	case "":
		return Basic(true), nil

	case basicType:
		return Basic(cfg.Accept), nil

	case addressType:
		if len(cfg.Regex) > 0 {
			m, err := stringmatcher.NewRegexMatcher(cfg.Regex)
			if err != nil {
				return nil, fmt.Errorf("acceptpolicy: invalid address regex: %w", err)
			}
			return Address(m), nil
		}
		cidrs, err := stringmatcher.NewCIDRMatcher(cfg.CIDRs)
		if err != nil {
			return nil, fmt.Errorf("acceptpolicy: %w", err)
		}
		return Address(stringmatcher.Or(stringmatcher.NewHostMatcher(cfg.Hosts), cidrs)), nil

	case notType:
		ps, err := parseChildren(cfg, 1, 1)
		if err != nil {
			return nil, err
		}
		return Not(ps[0]), nil

	case xorType:
		ps, err := parseChildren(cfg, 2, 2)
		if err != nil {
			return nil, err
		}
		return Xor(ps[0], ps[1]), nil

	case andType, orType:
		ps, err := parseChildren(cfg, 2, -1)
		if err != nil {
			return nil, err
		}
		combine := And
		if cfg.Type == orType {
			combine = Or
		}
		p := ps[0]
		for _, next := range ps[1:] {
			p = combine(p, next)
		}
		return p, nil

	default:
		return nil, fmt.Errorf("acceptpolicy: unrecognized policy type: %s", cfg.Type)
	}
}

func parseChildren(cfg Config, minN, maxN int) ([]Policy, error) {
	n := len(cfg.Policies)
	if n < minN || (maxN >= 0 && n > maxN) {
		return nil, fmt.Errorf("acceptpolicy: %s policy: unexpected number of child policies: %d", cfg.Type, n)
	}
	ps := make([]Policy, 0, n)
	for _, childCfg := range cfg.Policies {
		p, err := Parse(childCfg)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}
