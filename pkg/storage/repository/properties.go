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

package repository

import "context"

// Properties defines server wide property repository operations.
type Properties interface {
	// UpsertProperty inserts or updates a server property value.
	UpsertProperty(ctx context.Context, key, value string) error

	// FetchProperty retrieves a server property value.
	// An empty string and false are returned if the property was never set.
	FetchProperty(ctx context.Context, key string) (string, bool, error)

	// DeleteProperty removes a server property.
	DeleteProperty(ctx context.Context, key string) error
}
