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

package etcdkv

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

type healthResponse struct {
	Health string `json:"health"`
}

// checkHealth queries every endpoint health handler, failing on the first unhealthy one.
func checkHealth(endpoints []string, timeout time.Duration) error {
	cl := &http.Client{Timeout: timeout}
	for _, endpoint := range endpoints {
		if err := checkEndpointHealth(cl, endpoint); err != nil {
			return fmt.Errorf("etcdkv: health check failed: %w", err)
		}
	}
	return nil
}

func checkEndpointHealth(cl *http.Client, endpoint string) error {
	resp, err := cl.Get(endpoint + "/health")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	var hResp healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hResp); err != nil {
		return err
	}
	if healthy, _ := strconv.ParseBool(hResp.Health); !healthy {
		return fmt.Errorf("unhealthy endpoint %s", endpoint)
	}
	return nil
}
