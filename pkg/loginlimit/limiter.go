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

package loginlimit

import (
	"context"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/jackal-muc/pkg/acceptpolicy"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const (
	addressScope = "address"
	userScope    = "user"
)

var deniedLogins = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "jackal_muc",
		Subsystem: "login_limit",
		Name:      "denied_total",
		Help:      "The total number of denied login attempts.",
	},
	[]string{"scope"},
)

func init() {
	prometheus.MustRegister(deniedLogins)
}

// BucketConfig defines a token bucket.
type BucketConfig struct {
	// Rate is the number of attempts per second refilled into the bucket. Zero disables the bucket.
	Rate float64 `fig:"rate"`

	// Burst is the bucket capacity.
	Burst int `fig:"burst" default:"5"`
}

// Config contains login limiter configuration.
type Config struct {
	PerAddress BucketConfig `fig:"per_address"`
	PerUser    BucketConfig `fig:"per_user"`

	// IdleTimeout is the time after which an untouched bucket is discarded.
	IdleTimeout time.Duration `fig:"idle_timeout" default:"10m"`
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Limiter throttles login attempts by remote address and by username.
type Limiter struct {
	cfg    Config
	logger kitlog.Logger
	nowFn  func() time.Time

	mu    sync.Mutex
	addrs map[string]*bucket
	users map[string]*bucket

	doneCh chan struct{}
	wg     sync.WaitGroup
}

// New returns a new initialized Limiter.
func New(cfg Config, logger kitlog.Logger) *Limiter {
	return &Limiter{
		cfg:    cfg,
		logger: kitlog.With(logger, "component", "login_limit"),
		nowFn:  time.Now,
		addrs:  make(map[string]*bucket),
		users:  make(map[string]*bucket),
	}
}

// Allow reports whether a login attempt from addr for username may proceed.
// An empty addr or username skips the corresponding bucket.
// A denied attempt does not consume tokens from the other bucket.
func (l *Limiter) Allow(addr, username string) bool {
	now := l.nowFn()

	l.mu.Lock()
	defer l.mu.Unlock()

	var addrRes, userRes *rate.Reservation
	if len(addr) > 0 && l.cfg.PerAddress.Rate > 0 {
		addrRes = l.reserve(l.addrs, addr, l.cfg.PerAddress, now)
		if addrRes == nil {
			deniedLogins.WithLabelValues(addressScope).Inc()
			return false
		}
	}
	if len(username) > 0 && l.cfg.PerUser.Rate > 0 {
		userRes = l.reserve(l.users, username, l.cfg.PerUser, now)
		if userRes == nil {
			if addrRes != nil {
				addrRes.CancelAt(now)
			}
			deniedLogins.WithLabelValues(userScope).Inc()
			return false
		}
	}
	return true
}

// Policy returns an acceptpolicy.Policy that evaluates connections against the per-address bucket.
// Unlike every other policy it is stateful: each evaluation consumes a token.
func (l *Limiter) Policy() acceptpolicy.Policy {
	return (*addressPolicy)(l)
}

// Start starts discarding idle buckets.
func (l *Limiter) Start(_ context.Context) error {
	if l.cfg.IdleTimeout <= 0 {
		return nil
	}
	l.doneCh = make(chan struct{})
	l.wg.Add(1)
	go l.sweepLoop()

	level.Info(l.logger).Log("msg", "started login limiter", "idle_timeout", l.cfg.IdleTimeout)
	return nil
}

// Stop stops login limiter.
func (l *Limiter) Stop(_ context.Context) error {
	if l.doneCh == nil {
		return nil
	}
	close(l.doneCh)
	l.wg.Wait()

	level.Info(l.logger).Log("msg", "stopped login limiter")
	return nil
}

func (l *Limiter) reserve(buckets map[string]*bucket, key string, cfg BucketConfig, now time.Time) *rate.Reservation {
	b := buckets[key]
	if b == nil {
		b = &bucket{lim: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst)}
		buckets[key] = b
	}
	b.lastSeen = now

	r := b.lim.ReserveN(now, 1)
	if !r.OK() {
		return nil
	}
	if r.DelayFrom(now) > 0 {
		r.CancelAt(now)
		return nil
	}
	return r
}

func (l *Limiter) sweepLoop() {
	defer l.wg.Done()

	tc := time.NewTicker(l.cfg.IdleTimeout / 2)
	defer tc.Stop()

	for {
		select {
		case <-tc.C:
			l.sweep()
		case <-l.doneCh:
			return
		}
	}
}

func (l *Limiter) sweep() {
	deadline := l.nowFn().Add(-l.cfg.IdleTimeout)

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, buckets := range []map[string]*bucket{l.addrs, l.users} {
		for k, b := range buckets {
			if b.lastSeen.Before(deadline) {
				delete(buckets, k)
			}
		}
	}
}

type addressPolicy Limiter

func (p *addressPolicy) Evaluate(conn acceptpolicy.Connection) bool {
	return (*Limiter)(p).Allow(conn.RemoteHost(), "")
}
