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

// Package instance resolves the identity of the local cluster node.
package instance

import (
	"errors"
	"net"
	"os"
	"sync"

	"github.com/google/uuid"
)

const (
	envNodeID   = "JACKAL_MUC_NODE_ID"
	envHostname = "JACKAL_MUC_HOSTNAME"
)

const fallbackHostname = "localhost"

var (
	once sync.Once

	nodeID, hostname string
)

var interfaceAddresses = net.InterfaceAddrs

// ID returns the local node identifier.
// The value is read from JACKAL_MUC_NODE_ID, or a random UUID is assigned on first use.
func ID() string {
	once.Do(resolve)
	return nodeID
}

// Hostname returns the address other cluster nodes use to reach the local node.
func Hostname() string {
	once.Do(resolve)
	return hostname
}

func resolve() {
	nodeID = resolveID()
	hostname = resolveHostname()
}

func resolveID() string {
	if id := os.Getenv(envNodeID); len(id) > 0 {
		return id
	}
	return uuid.New().String()
}

func resolveHostname() string {
	if fqdn := os.Getenv(envHostname); len(fqdn) > 0 {
		return fqdn
	}
	ip, err := firstNonLoopbackIPv4()
	if err == nil {
		return ip
	}
	return fallbackHostname
}

func firstNonLoopbackIPv4() (string, error) {
	addresses, err := interfaceAddresses()
	if err != nil {
		return "", err
	}
	for _, addr := range addresses {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ipNet.IP.To4() != nil {
			return ipNet.IP.String(), nil
		}
	}
	return "", errors.New("instance: no suitable local ip address")
}
