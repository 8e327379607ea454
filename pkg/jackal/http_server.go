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
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readHeaderTimeout = 5 * time.Second

var pprofHandlers = map[string]http.HandlerFunc{
	"/debug/pprof/":        pprof.Index,
	"/debug/pprof/cmdline": pprof.Cmdline,
	"/debug/pprof/profile": pprof.Profile,
	"/debug/pprof/symbol":  pprof.Symbol,
	"/debug/pprof/trace":   pprof.Trace,
}

// httpServer serves operational endpoints: prometheus metrics, pprof and the admin API.
type httpServer struct {
	addr   string
	admin  *adminHandler
	srv    *http.Server
	logger kitlog.Logger
}

func newHTTPServer(port int, admin *adminHandler, logger kitlog.Logger) *httpServer {
	return &httpServer{
		addr:   net.JoinHostPort("", strconv.Itoa(port)),
		admin:  admin,
		logger: logger,
	}
}

func (h *httpServer) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", h.addr)
	if err != nil {
		return err
	}
	h.srv = &http.Server{
		Handler:           h.mux(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		if err := h.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			level.Error(h.logger).Log("msg", "http server stopped unexpectedly", "err", err)
		}
	}()
	level.Info(h.logger).Log("msg", "http server listening", "addr", ln.Addr().String())
	return nil
}

func (h *httpServer) Stop(ctx context.Context) error {
	if err := h.srv.Shutdown(ctx); err != nil {
		return err
	}
	level.Info(h.logger).Log("msg", "http server closed", "addr", h.addr)
	return nil
}

func (h *httpServer) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	for path, fn := range pprofHandlers {
		mux.Handle(path, fn)
	}
	if h.admin != nil {
		h.admin.register(mux)
	}
	return mux
}
