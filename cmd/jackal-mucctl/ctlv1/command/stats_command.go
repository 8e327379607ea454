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

	"github.com/spf13/cobra"
)

// NewStatsCommand returns the cobra command for "stats".
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Shows processed stanza counters",
		Run:   statsCommandFunc,
	}
}

func statsCommandFunc(cmd *cobra.Command, args []string) {
	if len(args) != 0 {
		ExitWithError(ExitBadArgs, fmt.Errorf("stats command requires no arguments"))
	}
	cl, ctx, cancel := mustClientFromCmd(cmd)
	defer cancel()

	resp, err := cl.GetStats(ctx)
	if err != nil {
		ExitWithError(ExitError, err)
	}
	display.Stats(resp)
}
