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

package boltdb

import (
	"encoding/binary"
	"errors"

	bolt "go.etcd.io/bbolt"
)

// buckets exposes the bucket level primitives the repositories are built on.
// Values returned by get are copies, bolt memory is only valid while tx is open.
type buckets struct {
	tx *bolt.Tx
}

func (bs buckets) put(bucket, key string, val []byte) error {
	b, err := bs.tx.CreateBucketIfNotExists([]byte(bucket))
	if err != nil {
		return err
	}
	return b.Put([]byte(key), val)
}

// append stores val under the next bucket sequence. Keys are big-endian so cursor order is insertion order.
func (bs buckets) append(bucket string, val []byte) error {
	b, err := bs.tx.CreateBucketIfNotExists([]byte(bucket))
	if err != nil {
		return err
	}
	seq, err := b.NextSequence()
	if err != nil {
		return err
	}
	return b.Put(uint64Bytes(seq), val)
}

func (bs buckets) get(bucket, key string) []byte {
	b := bs.tx.Bucket([]byte(bucket))
	if b == nil {
		return nil
	}
	if v := b.Get([]byte(key)); v != nil {
		return append([]byte(nil), v...)
	}
	return nil
}

func (bs buckets) del(bucket, key string) error {
	if b := bs.tx.Bucket([]byte(bucket)); b != nil {
		return b.Delete([]byte(key))
	}
	return nil
}

func (bs buckets) drop(bucket string) error {
	if err := bs.tx.DeleteBucket([]byte(bucket)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
		return err
	}
	return nil
}

func (bs buckets) exists(bucket string) bool {
	return bs.tx.Bucket([]byte(bucket)) != nil
}

func (bs buckets) count(bucket string) int {
	b := bs.tx.Bucket([]byte(bucket))
	if b == nil {
		return 0
	}
	return b.Stats().KeyN
}

func (bs buckets) each(bucket string, fn func(k, v []byte) error) error {
	if b := bs.tx.Bucket([]byte(bucket)); b != nil {
		return b.ForEach(fn)
	}
	return nil
}

func uint64Bytes(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
