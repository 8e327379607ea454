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
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var display printer = &simplePrinter{}

// GlobalFlags are flags that defined globally and are inherited to all sub-commands.
type GlobalFlags struct {
	Host         string
	OutputFormat string

	DialTimeout    time.Duration
	CommandTimeOut time.Duration
}

func mustClientFromCmd(cmd *cobra.Command) (*adminClient, context.Context, context.CancelFunc) {
	initDisplayFromCmd(cmd)

	dialTimeout := dialTimeoutFromCmd(cmd)
	cl := newAdminClient("http://"+hostFromCmd(cmd), &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: dialTimeout}).DialContext,
		},
	})
	ctx, cancel := commandCtx(cmd)
	return cl, ctx, cancel
}

func initDisplayFromCmd(cmd *cobra.Command) {
	outputFormat, err := cmd.Flags().GetString("write-out")
	if err != nil {
		ExitWithError(ExitError, err)
	}
	p, err := newPrinter(outputFormat)
	if err != nil {
		ExitWithError(ExitBadArgs, err)
	}
	display = p
}

func commandCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeOut, err := cmd.Flags().GetDuration("command-timeout")
	if err != nil {
		ExitWithError(ExitError, err)
	}
	return context.WithTimeout(context.Background(), timeOut)
}

func hostFromCmd(cmd *cobra.Command) string {
	host, err := cmd.Flags().GetString("host")
	if err != nil {
		ExitWithError(ExitError, err)
	}
	if len(host) == 0 {
		ExitWithError(ExitBadArgs, fmt.Errorf("empty host"))
	}
	return host
}

func dialTimeoutFromCmd(cmd *cobra.Command) time.Duration {
	dialTimeout, err := cmd.Flags().GetDuration("dial-timeout")
	if err != nil {
		ExitWithError(ExitError, err)
	}
	return dialTimeout
}
