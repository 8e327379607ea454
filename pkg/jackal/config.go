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
	"path/filepath"

	"github.com/kkyr/fig"
	"github.com/ortuman/jackal-muc/pkg/acceptpolicy"
	"github.com/ortuman/jackal-muc/pkg/cluster/cache"
	"github.com/ortuman/jackal-muc/pkg/cluster/kv"
	"github.com/ortuman/jackal-muc/pkg/cluster/locker"
	"github.com/ortuman/jackal-muc/pkg/cluster/memberlist"
	"github.com/ortuman/jackal-muc/pkg/executor"
	"github.com/ortuman/jackal-muc/pkg/gateway"
	"github.com/ortuman/jackal-muc/pkg/host"
	"github.com/ortuman/jackal-muc/pkg/interceptor"
	"github.com/ortuman/jackal-muc/pkg/loginlimit"
	"github.com/ortuman/jackal-muc/pkg/module/offline"
	"github.com/ortuman/jackal-muc/pkg/muc"
	"github.com/ortuman/jackal-muc/pkg/privacy"
	"github.com/ortuman/jackal-muc/pkg/storage"
)

type LoggerConfig struct {
	Level  string `fig:"level" default:"debug"`
	Format string `fig:"format"`
}

type ClusterConfig struct {
	KV     kv.Config               `fig:"kv"`
	Cache  cache.Config            `fig:"cache"`
	Locker locker.Config           `fig:"locker"`
	Gossip memberlist.GossipConfig `fig:"gossip"`
}

type Config struct {
	Logger  LoggerConfig  `fig:"logger"`
	Cluster ClusterConfig `fig:"cluster"`

	HTTPPort int `fig:"http_port" default:"6060"`

	Storage storage.Config `fig:"storage"`
	Hosts   host.Configs   `fig:"hosts"`

	MUC          muc.Config          `fig:"muc"`
	Offline      offline.Config      `fig:"offline"`
	Privacy      privacy.Config      `fig:"privacy"`
	Executor     executor.Config     `fig:"executor"`
	Interceptors interceptor.Config  `fig:"interceptors"`
	LoginLimit   loginlimit.Config   `fig:"login_limit"`
	Gateways     gateway.Config      `fig:"gateways"`
	AcceptPolicy acceptpolicy.Config `fig:"accept_policy"`
}

func loadConfig(configFile string) (*Config, error) {
	var cfg Config
	file := filepath.Base(configFile)
	dir := filepath.Dir(configFile)

	err := fig.Load(&cfg, fig.File(file), fig.Dirs(dir))
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
