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

package jobs

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseName(t *testing.T) {
	tests := map[string]struct {
		input     string
		expected  Name
		expectErr bool
	}{
		"project, type, variant and branch": {
			input:    "backup.linux.cv/master",
			expected: Name{Project: "backup", OSType: "linux", Variant: "cv", Branch: "master"},
		},
		"change-named variant": {
			input:    "tools.linux.my_change/master",
			expected: Name{Project: "tools", OSType: "linux", Variant: "my_change", Branch: "master"},
		},
		"no variant": {
			input:    "cbbs.windows/neo",
			expected: Name{Project: "cbbs", OSType: "windows", Branch: "neo"},
		},
		"multiple variant segments are joined": {
			input:    "backup.aarch64-linux.cv.nightly/master",
			expected: Name{Project: "backup", OSType: "aarch64-linux", Variant: "cv.nightly", Branch: "master"},
		},
		"branch containing a slash": {
			input:    "backup.linux.cv/feature/resume",
			expected: Name{Project: "backup", OSType: "linux", Variant: "cv", Branch: "feature/resume"},
		},
		"empty branch after trailing slash": {
			input:    "backup.linux.cv/",
			expected: Name{Project: "backup", OSType: "linux", Variant: "cv"},
		},
		"missing branch separator": {
			input:     "backup.linux.cv",
			expectErr: true,
		},
		"missing OS type segment": {
			input:     "backup/master",
			expectErr: true,
		},
		"empty project segment": {
			input:     ".linux.cv/master",
			expectErr: true,
		},
		"empty OS type segment": {
			input:     "backup..cv/master",
			expectErr: true,
		},
		"empty name": {
			input:     "",
			expectErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			parsed, err := ParseName(test.input)

			if test.expectErr {
				if err == nil {
					t.Fatalf("expected error parsing %q but got none", test.input)
				}

				var malformed *MalformedNameError
				if !errors.As(err, &malformed) {
					t.Errorf("expected MalformedNameError, got %T: %v", err, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(parsed, test.expected) {
				t.Errorf("expected %#v but got %#v", test.expected, parsed)
			}
		})
	}
}

func TestProjectAndJobType(t *testing.T) {
	project, err := Project("tools.linux.my_change/master")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project != "tools" {
		t.Errorf("expected project %q but got %q", "tools", project)
	}

	jobType, err := JobType("tools.linux.my_change/master")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobType != "linux" {
		t.Errorf("expected job type %q but got %q", "linux", jobType)
	}

	if _, err := Project("no-separators"); err == nil {
		t.Errorf("expected error for job name without separators")
	}
	if _, err := JobType("no-separators"); err == nil {
		t.Errorf("expected error for job name without separators")
	}
}

func TestResolve(t *testing.T) {
	cfg := DefaultConfig()

	tests := map[string]struct {
		jobName  string
		branch   string
		expected Resolution
	}{
		"linux commit validation": {
			jobName: "backup.linux.cv/master",
			branch:  "master",
			expected: Resolution{
				Project:   "backup",
				JobType:   "linux",
				Family:    FamilyLinux,
				NodeLabel: "linux64 && master",
			},
		},
		"macos runs silently": {
			jobName: "cbbs.macos.cv/master",
			branch:  "master",
			expected: Resolution{
				Project:   "cbbs",
				JobType:   "macos",
				Family:    FamilyMacOS,
				NodeLabel: "macos && master",
				Silent:    true,
			},
		},
		"arm variant": {
			jobName: "cbmultimanager.aarch64-linux-al2.cv/neo",
			branch:  "neo",
			expected: Resolution{
				Project:   "cbmultimanager",
				JobType:   "aarch64-linux-al2",
				Family:    FamilyLinuxARM,
				NodeLabel: "aarch64 && amzn2 && neo",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			resolution, err := Resolve(cfg, test.jobName, test.branch)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(resolution, test.expected) {
				t.Errorf("expected %#v but got %#v", test.expected, resolution)
			}
		})
	}

	if _, err := Resolve(cfg, "garbage", "master"); err == nil {
		t.Errorf("expected error resolving malformed job name")
	}
}
