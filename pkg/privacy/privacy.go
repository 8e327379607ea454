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

// Package privacy decides whether user privacy rules block a stanza.
package privacy

import (
	"context"
	"strings"
	"sync"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
)

// Checker defines privacy rules evaluation interface.
type Checker interface {
	// ShouldBlockPacket tells whether stanza exchanged by username must be blocked.
	// When incoming is true username is the stanza recipient, otherwise the sender.
	ShouldBlockPacket(ctx context.Context, username string, stanza stravaganza.Stanza, incoming bool) (bool, error)
}

// Nop is a Checker that never blocks.
type Nop struct{}

// ShouldBlockPacket satisfies Checker interface.
func (Nop) ShouldBlockPacket(_ context.Context, _ string, _ stravaganza.Stanza, _ bool) (bool, error) {
	return false, nil
}

// Config contains block list configuration.
// Keys are usernames, values the blocked addresses (bare JIDs or domains).
type Config struct {
	BlockLists map[string][]string `fig:"block_lists"`
}

// BlockList is an in-memory Checker blocking every stanza exchanged with a blocked address.
type BlockList struct {
	mu    sync.RWMutex
	items map[string]map[string]struct{}
}

// NewBlockList returns a BlockList initialized from cfg.
func NewBlockList(cfg Config) *BlockList {
	bl := &BlockList{items: make(map[string]map[string]struct{})}
	for username, addresses := range cfg.BlockLists {
		for _, addr := range addresses {
			bl.Block(username, addr)
		}
	}
	return bl
}

// Block adds addr to username block list.
func (bl *BlockList) Block(username, addr string) {
	bl.mu.Lock()
	defer bl.mu.Unlock()

	items := bl.items[username]
	if items == nil {
		items = make(map[string]struct{})
		bl.items[username] = items
	}
	items[strings.ToLower(addr)] = struct{}{}
}

// Unblock removes addr from username block list.
func (bl *BlockList) Unblock(username, addr string) {
	bl.mu.Lock()
	defer bl.mu.Unlock()

	items := bl.items[username]
	delete(items, strings.ToLower(addr))
	if len(items) == 0 {
		delete(bl.items, username)
	}
}

// ShouldBlockPacket satisfies Checker interface.
func (bl *BlockList) ShouldBlockPacket(_ context.Context, username string, stanza stravaganza.Stanza, incoming bool) (bool, error) {
	var peer *jid.JID
	if incoming {
		peer = stanza.FromJID()
	} else {
		peer = stanza.ToJID()
	}
	if peer == nil {
		return false, nil
	}
	bl.mu.RLock()
	defer bl.mu.RUnlock()

	items := bl.items[username]
	if len(items) == 0 {
		return false, nil
	}
	if _, ok := items[peer.ToBareJID().String()]; ok {
		return true, nil
	}
	_, ok := items[peer.Domain()]
	return ok, nil
}
