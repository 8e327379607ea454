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

package c2s

import (
	"sync"

	streamerror "github.com/jackal-xmpp/stravaganza/v2/errors/stream"
)

type resources struct {
	mu   sync.RWMutex
	stms []Stream
}

func (r *resources) all() []Stream {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stms
}

func (r *resources) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stms)
}

func (r *resources) bind(stm Stream) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := stm.Resource()
	for _, s := range r.stms {
		if s.Resource() == res {
			return false
		}
	}
	stms := make([]Stream, 0, len(r.stms)+1)
	stms = append(stms, r.stms...)
	r.stms = append(stms, stm)
	return true
}

func (r *resources) unbind(stm Stream) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.stms {
		if s.ID() != stm.ID() {
			continue
		}
		stms := make([]Stream, 0, len(r.stms)-1)
		stms = append(stms, r.stms[:i]...)
		r.stms = append(stms, r.stms[i+1:]...)
		return true
	}
	return false
}

func (r *resources) stream(res string) Stream {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.stms {
		if s.Resource() == res {
			return s
		}
	}
	return nil
}

func (r *resources) disconnect(resource string, streamErr *streamerror.Error) error {
	stm := r.stream(resource)
	if stm == nil {
		return nil
	}
	return <-stm.Disconnect(streamErr)
}
