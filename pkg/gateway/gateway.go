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

// Package gateway keeps the legacy network transports served by this node.
//
// A transport is a bag of optional capabilities. Callers must check the capability
// they need before using it since a transport may only implement some of them.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/samber/lo"
)

var (
	// ErrTransportNotFound is returned when a transport name or domain is not registered.
	ErrTransportNotFound = errors.New("gateway: transport not found")

	// ErrUnsupportedCapability is returned when a transport lacks the requested capability.
	ErrUnsupportedCapability = errors.New("gateway: unsupported transport capability")

	// ErrNotRegistered is returned when a user has no registration with a transport.
	ErrNotRegistered = errors.New("gateway: user not registered")
)

// Registration contains a user credentials on a legacy network.
type Registration struct {
	// JID is the registered user bare address.
	JID *jid.JID

	// Username is the legacy network account name.
	Username string

	// Password is the legacy network account password.
	Password string
}

// LoginHandler logs users in and out of a legacy network.
type LoginHandler interface {
	// Login opens a legacy network session announcing pr as the initial status.
	Login(ctx context.Context, reg Registration, pr *stravaganza.Presence) error

	// Logout closes reg associated legacy network session.
	Logout(ctx context.Context, reg Registration) error
}

// StatusMapper translates XMPP presences to legacy network statuses and back.
type StatusMapper interface {
	// ToLegacyStatus returns pr legacy network status.
	ToLegacyStatus(pr *stravaganza.Presence) string

	// FromLegacyStatus returns the presence show value of a legacy status
	// and whether the status means the contact is available.
	FromLegacyStatus(status string) (show string, available bool)
}

// Transport represents a legacy network transport.
type Transport struct {
	// Name identifies the transport.
	Name string

	// Domain is the component domain the transport is reachable at.
	Domain string

	// LoginHandler is set when the transport supports legacy network sessions.
	LoginHandler LoginHandler

	// StatusMapper is set when the transport translates statuses.
	StatusMapper StatusMapper
}

// Config contains gateway configuration.
type Config struct {
	Transports []TransportConfig `fig:"transports"`
}

// TransportConfig contains a transport configuration.
type TransportConfig struct {
	Name          string               `fig:"name"`
	Domain        string               `fig:"domain"`
	Registrations []RegistrationConfig `fig:"registrations"`
}

// RegistrationConfig contains a preconfigured user registration.
type RegistrationConfig struct {
	JID      string `fig:"jid"`
	Username string `fig:"username"`
	Password string `fig:"password"`
}

// Registry keeps registered transports and their user registrations.
type Registry struct {
	mu            sync.RWMutex
	transports    map[string]*Transport
	domains       map[string]string
	registrations map[string]map[string]Registration
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		transports:    make(map[string]*Transport),
		domains:       make(map[string]string),
		registrations: make(map[string]map[string]Registration),
	}
}

// NewRegistryFromConfig returns a Registry loaded with cfg transports and registrations.
// Configured transports carry no capabilities until a handler is attached.
func NewRegistryFromConfig(cfg Config) (*Registry, error) {
	r := NewRegistry()
	for _, tc := range cfg.Transports {
		if err := r.Register(&Transport{Name: tc.Name, Domain: tc.Domain}); err != nil {
			return nil, err
		}
		for _, rc := range tc.Registrations {
			userJID, err := jid.NewWithString(rc.JID, false)
			if err != nil {
				return nil, fmt.Errorf("gateway: invalid registration address %q: %w", rc.JID, err)
			}
			err = r.AddRegistration(tc.Name, Registration{
				JID:      userJID.ToBareJID(),
				Username: rc.Username,
				Password: rc.Password,
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// Register adds t to the registry.
func (r *Registry) Register(t *Transport) error {
	if len(t.Name) == 0 || len(t.Domain) == 0 {
		return fmt.Errorf("gateway: transport name and domain are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transports[t.Name]; ok {
		return fmt.Errorf("gateway: transport %s already registered", t.Name)
	}
	if name, ok := r.domains[t.Domain]; ok {
		return fmt.Errorf("gateway: domain %s already served by %s transport", t.Domain, name)
	}
	r.transports[t.Name] = t
	r.domains[t.Domain] = t.Name
	return nil
}

// Unregister removes name transport along with its registrations.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transports[name]
	if !ok {
		return
	}
	delete(r.transports, name)
	delete(r.domains, t.Domain)
	delete(r.registrations, name)
}

// Transport returns name transport, or nil if not registered.
func (r *Registry) Transport(name string) *Transport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.transports[name]
}

// TransportByDomain returns the transport served at domain, or nil if none.
func (r *Registry) TransportByDomain(domain string) *Transport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.transports[r.domains[domain]]
}

// Transports returns all registered transports sorted by name.
func (r *Registry) Transports() []*Transport {
	r.mu.RLock()
	ts := lo.Values(r.transports)
	r.mu.RUnlock()

	sort.Slice(ts, func(i, j int) bool { return ts[i].Name < ts[j].Name })
	return ts
}

// AddRegistration stores reg for name transport, replacing any previous one.
func (r *Registry) AddRegistration(name string, reg Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transports[name]; !ok {
		return fmt.Errorf("%w: %s", ErrTransportNotFound, name)
	}
	regs := r.registrations[name]
	if regs == nil {
		regs = make(map[string]Registration)
		r.registrations[name] = regs
	}
	reg.JID = reg.JID.ToBareJID()
	regs[reg.JID.String()] = reg
	return nil
}

// RemoveRegistration removes userJID registration from name transport.
func (r *Registry) RemoveRegistration(name string, userJID *jid.JID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.registrations[name], userJID.ToBareJID().String())
}

// Registration returns userJID registration on name transport.
func (r *Registry) Registration(name string, userJID *jid.JID) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.registrations[name][userJID.ToBareJID().String()]
	return reg, ok
}

// IsRegistered tells whether userJID is registered with the transport served at domain.
func (r *Registry) IsRegistered(domain string, userJID *jid.JID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.domains[domain]
	if !ok {
		return false
	}
	_, ok = r.registrations[name][userJID.ToBareJID().String()]
	return ok
}
