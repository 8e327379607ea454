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

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/ortuman/jackal-muc/pkg/version"
)

const (
	memberKeyPrefix   = "n://"
	memberValueFormat = "a=%s cv=%s"
)

// Member represents a cluster node.
type Member struct {
	NodeID string
	Host   string
	Port   int
	APIVer *version.SemanticVersion
}

// String returns member gossip address.
func (m Member) String() string {
	return net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
}

func encodeMember(m Member) string {
	return fmt.Sprintf(memberValueFormat, m.String(), m.APIVer.String())
}

func decodeMember(key, val string) (*Member, error) {
	nodeID := strings.TrimPrefix(key, memberKeyPrefix)

	var addr, apiVer string
	if _, err := fmt.Sscanf(val, memberValueFormat, &addr, &apiVer); err != nil {
		return nil, fmt.Errorf("memberlist: malformed member value %q: %w", val, err)
	}
	ver, err := version.Parse(apiVer)
	if err != nil {
		return nil, err
	}
	host, sPort, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(sPort)
	if err != nil {
		return nil, err
	}
	return &Member{
		NodeID: nodeID,
		Host:   host,
		Port:   port,
		APIVer: ver,
	}, nil
}

func memberKey(nodeID string) string {
	return memberKeyPrefix + nodeID
}
