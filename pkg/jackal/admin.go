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
	"context"
	"encoding/json"
	"net/http"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/jackal-muc/pkg/module/offline"
	"github.com/ortuman/jackal-muc/pkg/module/stats"
)

type offlineAdmin interface {
	Quota() int
	SetQuota(ctx context.Context, quota int) error
	Type() offline.Type
	SetType(ctx context.Context, typ offline.Type) error
}

type statsProvider interface {
	Snapshot() stats.Snapshot
}

// OfflineSettings is the admin representation of the offline strategy.
type OfflineSettings struct {
	Type  string `json:"type" yaml:"type"`
	Quota int    `json:"quota" yaml:"quota"`
}

type adminHandler struct {
	offline offlineAdmin
	stats   statsProvider
	logger  kitlog.Logger
}

func (h *adminHandler) register(mux *http.ServeMux) {
	mux.HandleFunc("/admin/offline", h.handleOffline)
	mux.HandleFunc("/admin/stats", h.handleStats)
}

func (h *adminHandler) handleOffline(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.writeOfflineSettings(w)

	case http.MethodPut:
		var req OfflineSettings
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}
		if len(req.Type) > 0 {
			typ, err := offline.ParseType(req.Type)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err := h.offline.SetType(r.Context(), typ); err != nil {
				h.internalError(w, "failed to update offline type", err)
				return
			}
		}
		if req.Quota != 0 {
			if err := h.offline.SetQuota(r.Context(), req.Quota); err != nil {
				h.internalError(w, "failed to update offline quota", err)
				return
			}
		}
		level.Info(h.logger).Log("msg", "offline settings updated", "type", h.offline.Type().String(), "quota", h.offline.Quota())
		h.writeOfflineSettings(w)

	default:
		w.Header().Set("Allow", "GET, PUT")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *adminHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.stats.Snapshot())
}

func (h *adminHandler) writeOfflineSettings(w http.ResponseWriter) {
	writeJSON(w, OfflineSettings{
		Type:  h.offline.Type().String(),
		Quota: h.offline.Quota(),
	})
}

func (h *adminHandler) internalError(w http.ResponseWriter, msg string, err error) {
	level.Error(h.logger).Log("msg", msg, "err", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
