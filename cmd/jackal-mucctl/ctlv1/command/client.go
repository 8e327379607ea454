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

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ortuman/jackal-muc/pkg/module/stats"
)

const (
	offlinePath = "/admin/offline"
	statsPath   = "/admin/stats"
)

// OfflineSettings mirrors the server offline strategy settings.
type OfflineSettings struct {
	Type  string `json:"type,omitempty" yaml:"type"`
	Quota int    `json:"quota,omitempty" yaml:"quota"`
}

type adminClient struct {
	baseURL string
	cl      *http.Client
}

func newAdminClient(baseURL string, cl *http.Client) *adminClient {
	return &adminClient{baseURL: strings.TrimSuffix(baseURL, "/"), cl: cl}
}

func (c *adminClient) GetOffline(ctx context.Context) (*OfflineSettings, error) {
	var res OfflineSettings
	if err := c.do(ctx, http.MethodGet, offlinePath, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *adminClient) SetOffline(ctx context.Context, settings OfflineSettings) (*OfflineSettings, error) {
	var res OfflineSettings
	if err := c.do(ctx, http.MethodPut, offlinePath, settings, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *adminClient) GetStats(ctx context.Context) (*stats.Snapshot, error) {
	var res stats.Snapshot
	if err := c.do(ctx, http.MethodGet, statsPath, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *adminClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.cl.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(msg)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
