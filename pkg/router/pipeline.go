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

package router

import (
	"context"
	"errors"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/ortuman/jackal-muc/pkg/interceptor"
	xmpputil "github.com/ortuman/jackal-muc/pkg/util/xmpp"
)

// Pipeline drives incoming stanzas through the interceptor chain and the routing table.
//
// Rejections never escape Process: they turn into an error stanza addressed to the
// sender or into a silent drop.
type Pipeline struct {
	ic     *interceptor.Manager
	rt     RoutingTable
	logger kitlog.Logger
}

// NewPipeline returns a new initialized Pipeline.
func NewPipeline(ic *interceptor.Manager, rt RoutingTable, logger kitlog.Logger) *Pipeline {
	return &Pipeline{
		ic:     ic,
		rt:     rt,
		logger: logger,
	}
}

// Process processes an incoming stanza sent through session.
func (p *Pipeline) Process(ctx context.Context, stanza stravaganza.Stanza, session interceptor.Session) error {
	err := p.ic.InvokeInterceptors(ctx, stanza, session, true, false)
	if rejErr, ok := interceptor.IsRejected(err); ok {
		return p.reject(ctx, stanza, rejErr)
	}
	toJID := stanza.ToJID()
	if toJID == nil {
		return p.bounce(ctx, stanza, stanzaerror.BadRequest)
	}
	switch err := p.rt.RoutePacket(ctx, toJID, stanza, false); {
	case err == nil:
		break
	case errors.Is(err, ErrRemoteServerNotFound):
		return p.bounce(ctx, stanza, stanzaerror.RemoteServerNotFound)
	case errors.Is(err, ErrResourceNotFound), errors.Is(err, ErrUserNotAvailable):
		if _, ok := stanza.(*stravaganza.IQ); ok {
			return p.bounce(ctx, stanza, stanzaerror.ServiceUnavailable)
		}
		return nil
	default:
		level.Warn(p.logger).Log("msg", "failed to route stanza", "to", toJID.String(), "err", err)
		return p.bounce(ctx, stanza, stanzaerror.InternalServerError)
	}
	_ = p.ic.InvokeInterceptors(ctx, stanza, session, true, true)
	return nil
}

func (p *Pipeline) reject(ctx context.Context, stanza stravaganza.Stanza, rejErr *interceptor.RejectedError) error {
	if rejErr.Silent() {
		rejectedStanzas.WithLabelValues("true").Inc()
		return nil
	}
	rejectedStanzas.WithLabelValues("false").Inc()
	return p.bounce(ctx, stanza, rejErr.Reason)
}

func (p *Pipeline) bounce(ctx context.Context, stanza stravaganza.Stanza, reason stanzaerror.Reason) error {
	if stanza.Attribute(stravaganza.Type) == stravaganza.ErrorType {
		return nil
	}
	errStanza := xmpputil.MakeErrorStanza(stanza, reason)
	fromJID := errStanza.ToJID()
	if fromJID == nil {
		return nil
	}
	if err := p.rt.RoutePacket(ctx, fromJID, errStanza, false); err != nil {
		level.Debug(p.logger).Log("msg", "failed to route error stanza", "to", fromJID.String(), "err", err)
	}
	return nil
}
