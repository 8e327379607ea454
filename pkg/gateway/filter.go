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

package gateway

import (
	"context"

	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/ortuman/jackal-muc/pkg/interceptor"
)

const (
	registerNamespace   = "jabber:iq:register"
	discoInfoNamespace  = "http://jabber.org/protocol/disco#info"
	discoItemsNamespace = "http://jabber.org/protocol/disco#items"
)

// Filter is an interceptor rejecting stanzas sent to a transport by users not registered with it.
type Filter struct {
	reg *Registry
}

// NewFilter returns a Filter backed by reg.
func NewFilter(reg *Registry) *Filter {
	return &Filter{reg: reg}
}

// InterceptPacket satisfies interceptor.Interceptor interface.
func (f *Filter) InterceptPacket(_ context.Context, stanza stravaganza.Stanza, _ interceptor.Session, incoming, processed bool) error {
	if !incoming || processed {
		return nil
	}
	toJID, fromJID := stanza.ToJID(), stanza.FromJID()
	if toJID == nil || fromJID == nil {
		return nil
	}
	if f.reg.TransportByDomain(toJID.Domain()) == nil {
		return nil
	}
	if isRegistrationFlow(stanza) || f.reg.IsRegistered(toJID.Domain(), fromJID) {
		return nil
	}
	return interceptor.Reject(stanzaerror.RegistrationRequired)
}

// isRegistrationFlow tells whether stanza is needed by a user to discover a transport and register with it.
func isRegistrationFlow(stanza stravaganza.Stanza) bool {
	iq, ok := stanza.(*stravaganza.IQ)
	if !ok {
		return false
	}
	for _, ns := range []string{registerNamespace, discoInfoNamespace, discoItemsNamespace} {
		if iq.ChildNamespace("query", ns) != nil {
			return true
		}
	}
	return false
}
