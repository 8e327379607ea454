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
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-kit/log/level"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/ortuman/jackal-muc/pkg/log"
	"github.com/ortuman/jackal-muc/pkg/util/crashreporter"
	"github.com/ortuman/jackal-muc/pkg/version"
)

const (
	bootstrapTimeout = time.Minute
	shutdownTimeout  = 30 * time.Second

	envConfigFile = "JACKAL_MUC_CONFIG_FILE"

	// darwin reports an unlimited hard limit but rejects anything above OPEN_MAX.
	darwinOpenMax = 10240
)

const usage = `Usage: jackal-muc [options]

  --config <file>   configuration file path (env JACKAL_MUC_CONFIG_FILE takes precedence)
  --version         print version and exit
  --help            print this message and exit
`

type step func(ctx context.Context) error

type startStopper interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type runOptions struct {
	configFile  string
	showVersion bool
	showUsage   bool
}

// Run loads configuration, starts every subsystem and blocks until a stop signal arrives.
func (j *Jackal) Run() error {
	defer crashreporter.RecoverAndReportPanic()

	opts := j.parseFlags()
	switch {
	case opts.showUsage:
		_, _ = fmt.Fprint(j.output, usage)
		return nil
	case opts.showVersion:
		_, _ = fmt.Fprintf(j.output, "jackal-muc version: %v\n", version.ApplicationVersion)
		return nil
	}
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}
	j.logger = log.NewDefaultLogger(cfg.Logger.Level, cfg.Logger.Format)

	level.Info(j.logger).Log("msg", "starting jackal-muc",
		"version", version.ApplicationVersion,
		"go_ver", runtime.Version(),
		"go_os", runtime.GOOS,
		"go_arch", runtime.GOARCH,
	)
	grpc_prometheus.EnableHandlingTimeHistogram()

	if err := raiseOpenFilesLimit(); err != nil {
		return err
	}
	if err := j.init(cfg); err != nil {
		return err
	}
	if err := runSteps(bootstrapTimeout, j.startSteps); err != nil {
		return err
	}
	sig := j.waitForStopSignal()
	level.Info(j.logger).Log("msg", "shutting down", "signal", sig.String())

	return runSteps(shutdownTimeout, j.stopSteps)
}

func (j *Jackal) parseFlags() runOptions {
	var opts runOptions

	fs := flag.NewFlagSet("jackal-muc", flag.ExitOnError)
	fs.SetOutput(j.output)
	fs.Usage = func() { _, _ = fmt.Fprint(j.output, usage) }

	fs.StringVar(&opts.configFile, "config", "config.yaml", "")
	fs.BoolVar(&opts.showVersion, "version", false, "")
	fs.BoolVar(&opts.showUsage, "help", false, "")
	_ = fs.Parse(j.args[1:])

	if f := os.Getenv(envConfigFile); len(f) > 0 {
		opts.configFile = f
	}
	return opts
}

// registerStartStopper starts ss after every previously registered component and stops it before them.
func (j *Jackal) registerStartStopper(ss startStopper) {
	j.startSteps = append(j.startSteps, ss.Start)
	j.stopSteps = append([]step{ss.Stop}, j.stopSteps...)
}

func (j *Jackal) waitForStopSignal() os.Signal {
	signal.Notify(j.waitStopCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	return <-j.waitStopCh
}

// runSteps invokes steps in order, stopping at the first failure or once timeout elapses.
func runSteps(timeout time.Duration, steps []step) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		for _, s := range steps {
			if err := s(ctx); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func raiseOpenFilesLimit() error {
	var lim syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &lim); err != nil {
		return err
	}
	if lim.Cur >= lim.Max {
		return nil
	}
	lim.Cur = lim.Max
	if runtime.GOOS == "darwin" {
		lim.Cur = darwinOpenMax
	}
	return syscall.Setrlimit(syscall.RLIMIT_NOFILE, &lim)
}
