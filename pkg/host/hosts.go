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

package host

import (
	"sort"
	"sync"

	"github.com/samber/lo"
)

const defaultDomain = "localhost"

// Hosts keeps the set of domains served by this server.
// Besides user domains it tracks component domains, such as MUC services.
type Hosts struct {
	mu          sync.RWMutex
	defaultHost string
	hosts       map[string]struct{}
	components  map[string]struct{}
}

// Configs contains all hosts configuration.
type Configs []Config

// Config defines a served domain.
type Config struct {
	Domain string `fig:"domain"`
}

// NewHosts returns a new initialized Hosts instance.
func NewHosts(cfg Configs) *Hosts {
	hs := &Hosts{
		hosts:      make(map[string]struct{}),
		components: make(map[string]struct{}),
	}
	if len(cfg) == 0 {
		hs.RegisterDefaultHost(defaultDomain)
		return hs
	}
	for i, config := range cfg {
		if i == 0 {
			hs.RegisterDefaultHost(config.Domain)
		} else {
			hs.RegisterHost(config.Domain)
		}
	}
	return hs
}

// RegisterDefaultHost registers the default user domain.
func (hs *Hosts) RegisterDefaultHost(h string) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.defaultHost = h
	hs.hosts[h] = struct{}{}
}

// RegisterHost registers a user domain.
func (hs *Hosts) RegisterHost(h string) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.hosts[h] = struct{}{}
}

// RegisterComponentHost registers a component domain.
func (hs *Hosts) RegisterComponentHost(h string) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.components[h] = struct{}{}
}

// UnregisterComponentHost unregisters a component domain.
func (hs *Hosts) UnregisterComponentHost(h string) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	delete(hs.components, h)
}

// DefaultHostName returns default user domain.
func (hs *Hosts) DefaultHostName() string {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return hs.defaultHost
}

// IsLocalHost tells whether h is a local user domain.
func (hs *Hosts) IsLocalHost(h string) bool {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	_, ok := hs.hosts[h]
	return ok
}

// IsComponentHost tells whether h is a local component domain.
func (hs *Hosts) IsComponentHost(h string) bool {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	_, ok := hs.components[h]
	return ok
}

// HostNames returns the sorted list of local user domains.
func (hs *Hosts) HostNames() []string {
	hs.mu.RLock()
	defer hs.mu.RUnlock()

	ret := lo.Keys(hs.hosts)
	sort.Strings(ret)
	return ret
}
