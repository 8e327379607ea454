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

package jackal

import (
	"io"
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/ortuman/jackal-muc/pkg/acceptpolicy"
	"github.com/ortuman/jackal-muc/pkg/c2s"
	"github.com/ortuman/jackal-muc/pkg/cluster/cache"
	"github.com/ortuman/jackal-muc/pkg/cluster/kv"
	etcdkv "github.com/ortuman/jackal-muc/pkg/cluster/kv/etcd"
	"github.com/ortuman/jackal-muc/pkg/cluster/locker"
	"github.com/ortuman/jackal-muc/pkg/cluster/memberlist"
	"github.com/ortuman/jackal-muc/pkg/cluster/ownership"
	"github.com/ortuman/jackal-muc/pkg/executor"
	"github.com/ortuman/jackal-muc/pkg/gateway"
	"github.com/ortuman/jackal-muc/pkg/hook"
	"github.com/ortuman/jackal-muc/pkg/host"
	"github.com/ortuman/jackal-muc/pkg/interceptor"
	"github.com/ortuman/jackal-muc/pkg/loginlimit"
	"github.com/ortuman/jackal-muc/pkg/module/offline"
	"github.com/ortuman/jackal-muc/pkg/module/stats"
	"github.com/ortuman/jackal-muc/pkg/muc"
	"github.com/ortuman/jackal-muc/pkg/privacy"
	"github.com/ortuman/jackal-muc/pkg/router"
	"github.com/ortuman/jackal-muc/pkg/storage"
	"github.com/ortuman/jackal-muc/pkg/storage/repository"
	etcdv3 "go.etcd.io/etcd/client/v3"
)

const etcdKVType = "etcd"

// Jackal is the root data structure of a multi-user chat node.
type Jackal struct {
	output io.Writer
	args   []string

	hk *hook.Hooks
	kv kv.KV

	etcdCli func() *etcdv3.Client
	locker  locker.Locker
	own     *ownership.Manager
	members *memberlist.MemberList
	tr      memberlist.Transport

	rep   repository.Repository
	hosts *host.Hosts

	streams  *c2s.Registry
	ic       *interceptor.Manager
	table    *router.Table
	pipeline *router.Pipeline
	exec     *executor.Executor

	mucSvc     *muc.Service
	offline    *offline.Strategy
	stats      *stats.Stats
	gwSessions *gateway.SessionRouter
	limiter    *loginlimit.Limiter
	accept     acceptpolicy.Policy

	startSteps []step
	stopSteps  []step

	waitStopCh chan os.Signal

	logger kitlog.Logger
}

// New makes a new Jackal.
func New(output io.Writer, args []string) *Jackal {
	return &Jackal{
		output:     output,
		args:       args,
		waitStopCh: make(chan os.Signal, 1),
	}
}

// AcceptConnection tells whether a connection should be accepted.
// Login limiter address buckets are consumed on every call.
func (j *Jackal) AcceptConnection(conn acceptpolicy.Connection) bool {
	return j.accept.Evaluate(conn)
}

// AllowLogin tells whether a login attempt of username from addr may proceed.
func (j *Jackal) AllowLogin(addr, username string) bool {
	return j.limiter.Allow(addr, username)
}

// Pipeline returns the stanza pipeline fed by stream frontends.
func (j *Jackal) Pipeline() *router.Pipeline { return j.pipeline }

// GatewaySessions returns the legacy network session router.
func (j *Jackal) GatewaySessions() *gateway.SessionRouter { return j.gwSessions }

// Streams returns the local stream registry.
func (j *Jackal) Streams() *c2s.Registry { return j.streams }

func (j *Jackal) init(cfg *Config) error {
	// init hooks
	j.hk = hook.NewHooks()

	// init cluster
	if err := j.initKV(cfg.Cluster.KV); err != nil {
		return err
	}
	if err := j.initOwnership(cfg.Cluster.Cache, cfg.Cluster.Locker); err != nil {
		return err
	}
	j.initMemberList(cfg.Cluster.KV.Type, cfg.Cluster.Gossip)

	// init repository
	if err := j.initRepository(cfg.Storage); err != nil {
		return err
	}
	j.hosts = host.NewHosts(cfg.Hosts)

	// init routing
	j.initRouting(cfg.Interceptors, cfg.Executor)

	// init services
	j.initMUC(cfg.MUC)
	if err := j.initOffline(cfg.Offline, cfg.Privacy); err != nil {
		return err
	}
	j.initStats()
	if err := j.initGateways(cfg.Gateways); err != nil {
		return err
	}
	if err := j.initAcceptPolicy(cfg.AcceptPolicy, cfg.LoginLimit); err != nil {
		return err
	}
	// init HTTP server
	j.registerStartStopper(newHTTPServer(cfg.HTTPPort, &adminHandler{
		offline: j.offline,
		stats:   j.stats,
		logger:  j.logger,
	}, j.logger))
	return nil
}

func (j *Jackal) initKV(cfg kv.Config) error {
	if cfg.Type == etcdKVType {
		etcdKV := etcdkv.New(cfg.Etcd, j.logger)
		j.kv = kv.NewMeasured(etcdKV)
		j.etcdCli = etcdKV.Client
	} else {
		k, err := kv.New(cfg, j.logger)
		if err != nil {
			return err
		}
		j.kv = k
	}
	j.registerStartStopper(j.kv)
	return nil
}

func (j *Jackal) initOwnership(cacheCfg cache.Config, lockerCfg locker.Config) error {
	lk, err := locker.New(lockerCfg, j.etcdCli)
	if err != nil {
		return err
	}
	j.locker = lk
	j.registerStartStopper(j.locker)

	c, err := cache.New(cacheCfg, j.kv)
	if err != nil {
		return err
	}
	j.own = ownership.NewManager(c, j.locker, j.hk, j.logger)
	j.registerStartStopper(j.own)
	return nil
}

func (j *Jackal) initMemberList(kvType string, gossipCfg memberlist.GossipConfig) {
	j.members = memberlist.New(j.kv, gossipCfg.Port, j.hk, j.logger)
	j.registerStartStopper(j.members)

	// a memory kv can not be shared, so there is no peer to gossip with
	if kvType != etcdKVType {
		j.tr = memberlist.NopTransport{}
		return
	}
	gossip := memberlist.NewGossip(gossipCfg, j.members, j.hk, j.logger)
	j.tr = gossip
	j.registerStartStopper(gossip)
}

func (j *Jackal) initRepository(cfg storage.Config) error {
	rep, err := storage.New(cfg, j.logger)
	if err != nil {
		return err
	}
	j.rep = rep
	j.registerStartStopper(j.rep)
	return nil
}

func (j *Jackal) initRouting(icCfg interceptor.Config, execCfg executor.Config) {
	j.streams = c2s.NewRegistry(j.own, j.logger)
	j.registerStartStopper(j.streams)

	j.ic = interceptor.NewManager(icCfg, j.logger)

	j.table = router.NewTable(j.hosts, j.streams, j.own, j.tr, j.ic, j.logger)
	j.registerStartStopper(j.table)

	j.pipeline = router.NewPipeline(j.ic, j.table, j.logger)

	j.exec = executor.New(execCfg, j.logger)
	j.stopSteps = append([]step{j.exec.Stop}, j.stopSteps...)
}

func (j *Jackal) initMUC(cfg muc.Config) {
	j.mucSvc = muc.New(cfg, j.table, j.streams, j.own, j.tr, j.exec, j.hk, j.logger)
	j.table.RegisterComponent(cfg.Domain, j.mucSvc)
	j.registerStartStopper(j.mucSvc)
}

func (j *Jackal) initOffline(cfg offline.Config, privacyCfg privacy.Config) error {
	var checker privacy.Checker = privacy.Nop{}
	if len(privacyCfg.BlockLists) > 0 {
		checker = privacy.NewBlockList(privacyCfg)
	}
	s, err := offline.New(cfg, j.hosts, j.table, j.rep, checker, j.locker, j.hk, j.logger)
	if err != nil {
		return err
	}
	j.offline = s
	j.table.SetOfflineStrategy(j.offline)
	j.ic.AddInterceptor(j.offline.Interceptor())
	j.registerStartStopper(j.offline)
	return nil
}

func (j *Jackal) initStats() {
	j.stats = stats.New()

	// rejected stanzas never reach the processed phase, so they are not counted
	j.ic.AddInterceptorAt(0, j.stats.Interceptor())
}

func (j *Jackal) initGateways(cfg gateway.Config) error {
	reg, err := gateway.NewRegistryFromConfig(cfg)
	if err != nil {
		return err
	}
	j.ic.AddInterceptor(gateway.NewFilter(reg))
	j.gwSessions = gateway.NewSessionRouter(reg, j.own, j.streams, j.logger)
	j.ic.AddInterceptor(j.gwSessions.Interceptor())
	return nil
}

func (j *Jackal) initAcceptPolicy(cfg acceptpolicy.Config, limitCfg loginlimit.Config) error {
	p, err := acceptpolicy.Parse(cfg)
	if err != nil {
		return err
	}
	j.limiter = loginlimit.New(limitCfg, j.logger)
	j.registerStartStopper(j.limiter)

	j.accept = acceptpolicy.And(p, j.limiter.Policy())
	return nil
}
