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

package offline

import (
	"github.com/ortuman/jackal-muc/pkg/cluster/locker"
	"github.com/ortuman/jackal-muc/pkg/privacy"
	"github.com/ortuman/jackal-muc/pkg/router"
	"github.com/ortuman/jackal-muc/pkg/storage/repository"
)

//go:generate moq -out repository.mock_test.go . globalRepository:repositoryMock
type globalRepository interface {
	repository.Repository
}

//go:generate moq -out routing_table.mock_test.go . routingTable:routingTableMock
type routingTable interface {
	router.RoutingTable
}

//go:generate moq -out hosts.mock_test.go . hosts
type hosts interface {
	IsLocalHost(h string) bool
}

//go:generate moq -out privacy.mock_test.go . privacyChecker:privacyCheckerMock
type privacyChecker interface {
	privacy.Checker
}

//go:generate moq -out locker.mock_test.go . lockerIface:lockerMock
type lockerIface interface {
	locker.Locker
}

//go:generate moq -out lock.mock_test.go . lockIface:lockMock
type lockIface interface {
	locker.Lock
}

//go:generate moq -out listener.mock_test.go . Listener:listenerMock
