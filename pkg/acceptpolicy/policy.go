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

import "github.com/ortuman/jackal-muc/pkg/util/stringmatcher"

// Connection represents an incoming connection subject to acceptance.
type Connection interface {
	// RemoteHost returns connection remote host address.
	RemoteHost() string
}

// Policy decides whether a connection should be accepted.
//
// Implementations are pure predicates safe to be evaluated concurrently.
type Policy interface {
	Evaluate(conn Connection) bool
}

// Basic returns a policy that always evaluates to the given value.
func Basic(always bool) Policy { return basic(always) }

type basic bool

func (p basic) Evaluate(_ Connection) bool { return bool(p) }

// And returns a policy that evaluates to true if both p1 and p2 do.
// p2 is not evaluated if p1 evaluates to false.
func And(p1, p2 Policy) Policy { return &and{p1: p1, p2: p2} }

type and struct{ p1, p2 Policy }

func (p *and) Evaluate(conn Connection) bool {
	return p.p1.Evaluate(conn) && p.p2.Evaluate(conn)
}

// Or returns a policy that evaluates to true if any of p1 or p2 does.
// p2 is not evaluated if p1 evaluates to true.
func Or(p1, p2 Policy) Policy { return &or{p1: p1, p2: p2} }

type or struct{ p1, p2 Policy }

func (p *or) Evaluate(conn Connection) bool {
	return p.p1.Evaluate(conn) || p.p2.Evaluate(conn)
}

// Not returns the negation of p.
func Not(p Policy) Policy { return &not{p: p} }

type not struct{ p Policy }

func (p *not) Evaluate(conn Connection) bool { return !p.p.Evaluate(conn) }

// Xor returns a policy that evaluates to true if exactly one of p1 and p2 does.
// Both policies are always evaluated.
func Xor(p1, p2 Policy) Policy { return &xor{p1: p1, p2: p2} }

type xor struct{ p1, p2 Policy }

func (p *xor) Evaluate(conn Connection) bool {
	r1 := p.p1.Evaluate(conn)
	r2 := p.p2.Evaluate(conn)
	return r1 != r2
}

// Address returns a policy that evaluates to true if connection remote host matches m.
func Address(m stringmatcher.Matcher) Policy { return &address{m: m} }

type address struct{ m stringmatcher.Matcher }

func (p *address) Evaluate(conn Connection) bool { return p.m.Matches(conn.RemoteHost()) }
