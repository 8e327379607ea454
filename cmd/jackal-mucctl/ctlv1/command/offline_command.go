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
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewOfflineCommand returns the cobra command for "offline".
func NewOfflineCommand() *cobra.Command {
	oc := &cobra.Command{
		Use:   "offline <subcommand>",
		Short: "Offline message strategy related commands",
	}
	oc.AddCommand(newOfflineGetCommand())
	oc.AddCommand(newOfflineSetTypeCommand())
	oc.AddCommand(newOfflineSetQuotaCommand())
	return oc
}

func newOfflineGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Shows current offline strategy",
		Run:   offlineGetCommandFunc,
	}
}

func newOfflineSetTypeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-type <bounce|drop|store|store_and_bounce|store_and_drop>",
		Short: "Changes offline strategy type",
		Run:   offlineSetTypeCommandFunc,
	}
}

func newOfflineSetQuotaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-quota <bytes>",
		Short: "Changes per user offline queue quota",
		Run:   offlineSetQuotaCommandFunc,
	}
}

// offlineGetCommandFunc executes the "offline get" command.
func offlineGetCommandFunc(cmd *cobra.Command, args []string) {
	if len(args) != 0 {
		ExitWithError(ExitBadArgs, fmt.Errorf("offline get command requires no arguments"))
	}
	cl, ctx, cancel := mustClientFromCmd(cmd)
	defer cancel()

	resp, err := cl.GetOffline(ctx)
	if err != nil {
		ExitWithError(ExitError, err)
	}
	display.Offline(resp)
}

// offlineSetTypeCommandFunc executes the "offline set-type" command.
func offlineSetTypeCommandFunc(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		ExitWithError(ExitBadArgs, fmt.Errorf("offline set-type command requires strategy type as its argument"))
	}
	cl, ctx, cancel := mustClientFromCmd(cmd)
	defer cancel()

	resp, err := cl.SetOffline(ctx, OfflineSettings{Type: args[0]})
	if err != nil {
		ExitWithError(ExitError, err)
	}
	display.Offline(resp)
}

// offlineSetQuotaCommandFunc executes the "offline set-quota" command.
func offlineSetQuotaCommandFunc(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		ExitWithError(ExitBadArgs, fmt.Errorf("offline set-quota command requires quota as its argument"))
	}
	quota, err := strconv.Atoi(args[0])
	if err != nil || quota <= 0 {
		ExitWithError(ExitBadArgs, fmt.Errorf("invalid quota: %s", args[0]))
	}
	cl, ctx, cancel := mustClientFromCmd(cmd)
	defer cancel()

	resp, err := cl.SetOffline(ctx, OfflineSettings{Quota: quota})
	if err != nil {
		ExitWithError(ExitError, err)
	}
	display.Offline(resp)
}
