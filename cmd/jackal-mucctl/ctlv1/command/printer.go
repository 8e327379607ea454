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
	"io"
	"os"
	"sort"

	"github.com/ortuman/jackal-muc/pkg/module/stats"
	"gopkg.in/yaml.v2"
)

type printer interface {
	Offline(*OfflineSettings)
	Stats(*stats.Snapshot)
}

func newPrinter(format string) (printer, error) {
	switch format {
	case "simple":
		return &simplePrinter{w: os.Stdout}, nil
	case "yaml":
		return &yamlPrinter{w: os.Stdout}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

type simplePrinter struct {
	w io.Writer
}

func (p *simplePrinter) Offline(s *OfflineSettings) {
	_, _ = fmt.Fprintf(p.w, "type: %s, quota: %d bytes\n", s.Type, s.Quota)
}

func (p *simplePrinter) Stats(s *stats.Snapshot) {
	for _, dir := range []struct {
		name     string
		counters map[string]uint64
	}{
		{"incoming", s.Incoming},
		{"outgoing", s.Outgoing},
	} {
		kinds := make([]string, 0, len(dir.counters))
		for k := range dir.counters {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			_, _ = fmt.Fprintf(p.w, "%s %s: %d\n", dir.name, k, dir.counters[k])
		}
	}
}

type yamlPrinter struct {
	w io.Writer
}

func (p *yamlPrinter) Offline(s *OfflineSettings) { p.print(s) }

func (p *yamlPrinter) Stats(s *stats.Snapshot) { p.print(s) }

func (p *yamlPrinter) print(v interface{}) {
	b, err := yaml.Marshal(v)
	if err != nil {
		ExitWithError(ExitError, err)
	}
	_, _ = p.w.Write(b)
}
