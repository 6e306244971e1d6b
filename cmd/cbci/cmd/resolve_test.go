/*
Copyright 2021 Couchbase Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"strings"
	"testing"

	"github.com/couchbase/tools-ci/pkg/jobs"
)

func TestRenderResolution(t *testing.T) {
	resolution := jobs.Resolution{
		Project:   "backup",
		JobType:   "linux",
		Family:    jobs.FamilyLinux,
		NodeLabel: "linux64 && master",
		Silent:    false,
	}

	tests := map[string]struct {
		format    string
		contains  []string
		exact     string
		expectErr bool
	}{
		"text format": {
			format: "text",
			exact:  "project: backup\njobType: linux\nfamily: linux\nnodeLabel: linux64 && master\nsilent: false\n",
		},
		"yaml format": {
			format: "yaml",
			contains: []string{
				"project: backup",
				"nodeLabel: linux64 && master",
				"silent: false",
			},
		},
		"unknown format": {
			format:    "json",
			expectErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := renderResolution(resolution, test.format)

			if (err != nil) != test.expectErr {
				t.Fatalf("expectErr=%v, err=%v", test.expectErr, err)
			}

			if test.exact != "" && out != test.exact {
				t.Errorf("wanted %q but got %q", test.exact, out)
			}

			for _, fragment := range test.contains {
				if !strings.Contains(out, fragment) {
					t.Errorf("output should contain %q, got:\n%s", fragment, out)
				}
			}
		})
	}
}
