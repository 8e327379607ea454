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

package measuredrepository

import (
	"context"
	"strconv"
	"time"

	"github.com/ortuman/jackal-muc/pkg/storage/repository"
)

const (
	upsertOp = "upsert"
	fetchOp  = "fetch"
	deleteOp = "delete"
)

const (
	userEntity     = "user"
	offlineEntity  = "offline"
	propertyEntity = "property"
)

// Measured is a repository decorator reporting per entity operation counts and latencies.
type Measured struct {
	measuredUserRep
	measuredOfflineRep
	measuredPropertiesRep
	rep repository.Repository
}

// New returns a measured repository wrapping rep.
func New(rep repository.Repository) repository.Repository {
	return &Measured{
		measuredUserRep:       measuredUserRep{rep: rep},
		measuredOfflineRep:    measuredOfflineRep{rep: rep},
		measuredPropertiesRep: measuredPropertiesRep{rep: rep},
		rep:                   rep,
	}
}

// Start satisfies repository.Repository interface.
func (m *Measured) Start(ctx context.Context) error { return m.rep.Start(ctx) }

// Stop satisfies repository.Repository interface.
func (m *Measured) Stop(ctx context.Context) error { return m.rep.Stop(ctx) }

func observe(entity, op string, fn func() error) error {
	_, err := observeValue(entity, op, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func observeValue[T any](entity, op string, fn func() (T, error)) (T, error) {
	t0 := time.Now()
	v, err := fn()

	success := strconv.FormatBool(err == nil)
	repOperations.WithLabelValues(entity, op, success).Inc()
	repOperationDurationBucket.WithLabelValues(entity, op, success).Observe(time.Since(t0).Seconds())
	return v, err
}
