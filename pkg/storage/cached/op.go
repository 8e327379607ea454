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

package cachedrepository

import (
	"context"
	"encoding"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// binaryValue constrains cached values to pointer types that round-trip through a byte slice.
type binaryValue[T any] interface {
	*T
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// readThrough binds a cache store to the backing repository calls.
// Cache failures degrade to repository reads and are never returned to the caller.
type readThrough struct {
	c      Cache
	logger log.Logger
}

// contains reports whether key is cached under ns, falling back to loadFn when it is not.
func (rt readThrough) contains(ctx context.Context, ns, key string, loadFn func(context.Context) (bool, error)) (bool, error) {
	ok, err := rt.c.HasKey(ctx, ns, key)
	switch {
	case err != nil:
		level.Warn(rt.logger).Log("msg", "failed to check cached key", "ns", ns, "key", key, "err", err)
	case ok:
		return true, nil
	}
	return loadFn(ctx)
}

// writeThrough drops keys from ns (the whole namespace when keys is empty) before running writeFn.
func (rt readThrough) writeThrough(ctx context.Context, ns string, keys []string, writeFn func(context.Context) error) error {
	var err error
	if len(keys) == 0 {
		err = rt.c.DelNS(ctx, ns)
	} else {
		err = rt.c.Del(ctx, ns, keys...)
	}
	if err != nil {
		return err
	}
	return writeFn(ctx)
}

// load returns the value cached under ns and key. On a miss the value is read through loadFn
// and cached, unless loadFn found nothing.
func load[T any, PT binaryValue[T]](ctx context.Context, rt readThrough, ns, key string, loadFn func(context.Context) (PT, error)) (PT, error) {
	b, err := rt.c.Get(ctx, ns, key)
	if err != nil {
		level.Warn(rt.logger).Log("msg", "failed to read cached value", "ns", ns, "key", key, "err", err)
		return loadFn(ctx)
	}
	if b != nil {
		v := PT(new(T))
		if err := v.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		return v, nil
	}
	v, err := loadFn(ctx)
	if err != nil || (*T)(v) == nil {
		return nil, err
	}
	b, err = v.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if err := rt.c.Put(ctx, ns, key, b); err != nil {
		level.Warn(rt.logger).Log("msg", "failed to cache value", "ns", ns, "key", key, "err", err)
	}
	return v, nil
}
