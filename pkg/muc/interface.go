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

package muc

import (
	"github.com/ortuman/jackal-muc/pkg/c2s"
	"github.com/ortuman/jackal-muc/pkg/cluster/memberlist"
	"github.com/ortuman/jackal-muc/pkg/router"
)

//go:generate moq -out stream.mock_test.go . c2sStream:streamMock
type c2sStream interface {
	c2s.Stream
}

//go:generate moq -out transport.mock_test.go . clusterTransport:transportMock
type clusterTransport interface {
	memberlist.Transport
}

//go:generate moq -out routing_table.mock_test.go . routingTable:routingTableMock
type routingTable interface {
	router.RoutingTable
}
