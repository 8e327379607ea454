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

package memberlist

import "context"

// NopTransport is a single node transport: there is no peer to talk to.
type NopTransport struct{}

// Handle satisfies transport interface.
func (NopTransport) Handle(_ string, _ MessageHandler) {}

// Send always fails with ErrNodeNotFound.
func (NopTransport) Send(_ context.Context, _ string, _ Message) error { return ErrNodeNotFound }

// Broadcast satisfies transport interface.
func (NopTransport) Broadcast(_ context.Context, _ Message) error { return nil }
