/*
Copyright 2022 Couchbase Inc.

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

package jobspecs

import (
	"strings"
	"testing"

	"github.com/couchbase/tools-ci/pkg/jobgen"
	"github.com/couchbase/tools-ci/pkg/jobs"
)

func TestSpecForProject(t *testing.T) {
	tests := map[string]struct {
		project   string
		expectErr bool
	}{
		"known project": {
			project: "backup",
		},
		"lookup folds case": {
			project: "BACKUP",
		},
		"unknown project": {
			project:   "sync-gateway",
			expectErr: true,
		},
		"empty project": {
			project:   "",
			expectErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := SpecForProject(test.project)
			if (err != nil) != test.expectErr {
				t.Errorf("SpecForProject(%q): expectErr=%v but got err=%v", test.project, test.expectErr, err)
			}

			if test.expectErr && err != nil && !strings.Contains(err.Error(), "known projects are") {
				t.Errorf("error should name the known projects, got: %v", err)
			}
		})
	}
}

func TestKnownProjects(t *testing.T) {
	known := KnownProjects()

	expected := "backup, cbbs, cbmultimanager"
	if known != expected {
		t.Errorf("wanted sorted project list %q but got %q", expected, known)
	}
}

func TestGenerateJobFileBackup(t *testing.T) {
	spec, err := SpecForProject("backup")
	if err != nil {
		t.Fatalf("failed to look up spec: %s", err)
	}

	file, err := spec.GenerateJobFile(jobs.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to generate job file: %s", err)
	}

	// four OS types, each fanned out across two branches
	if len(file.Jobs) != 8 {
		t.Fatalf("wanted 8 jobs but got %d", len(file.Jobs))
	}

	nameCounts := make(map[string]int)
	for _, job := range file.Jobs {
		nameCounts[job.Name]++
	}

	for _, name := range []string{"backup.linux.cv", "backup.windows.cv", "backup.macos.cv", "backup.aarch64-linux.cv"} {
		if nameCounts[name] != 2 {
			t.Errorf("wanted 2 entries named %q but got %d", name, nameCounts[name])
		}
	}

	for _, job := range file.Jobs {
		switch {
		case job.Name == "backup.windows.cv" && job.Branch == "neo":
			if job.NodeLabel != "win64 && neo" {
				t.Errorf("wanted windows neo job to be labelled %q but got %q", "win64 && neo", job.NodeLabel)
			}

		case job.Name == "backup.macos.cv":
			if !job.Trigger.SilentMode {
				t.Errorf("macos job %q on %q should vote silently", job.Name, job.Branch)
			}

		case job.Name == "backup.linux.cv":
			if job.Trigger.SilentMode {
				t.Errorf("linux job %q on %q should not vote silently", job.Name, job.Branch)
			}
		}
	}
}

func TestGenerateJobFileIsRepeatable(t *testing.T) {
	for i := 0; i < 2; i++ {
		spec, err := SpecForProject("cbmultimanager")
		if err != nil {
			t.Fatalf("failed to look up spec: %s", err)
		}

		file, err := spec.GenerateJobFile(jobs.DefaultConfig())
		if err != nil {
			t.Fatalf("failed to generate job file: %s", err)
		}

		// three OS types across two branches; a second generation must not
		// accumulate jobs from the first
		if len(file.Jobs) != 6 {
			t.Fatalf("generation %d: wanted 6 jobs but got %d", i+1, len(file.Jobs))
		}
	}
}

func TestGenerateJobFileCbbs(t *testing.T) {
	spec, err := SpecForProject("cbbs")
	if err != nil {
		t.Fatalf("failed to look up spec: %s", err)
	}

	file, err := spec.GenerateJobFile(jobs.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to generate job file: %s", err)
	}

	if len(file.Jobs) != 1 {
		t.Fatalf("wanted 1 job but got %d", len(file.Jobs))
	}

	job := file.Jobs[0]

	if !hasStage(job, "ui-build") {
		t.Errorf("cbbs job should carry a ui-build stage, stages were: %v", allStageNames(job))
	}

	latest := false
	for _, stage := range job.Stages {
		if stage.Name != "go-toolchain" {
			continue
		}

		for _, line := range stage.Shell {
			if strings.Contains(line, "--latest") {
				latest = true
			}
		}
	}

	if !latest {
		t.Errorf("cbbs toolchain stage should fetch the latest release, stages were: %v", job.Stages)
	}
}

func hasStage(job *jobgen.PipelineJob, name string) bool {
	for _, stage := range job.Stages {
		if stage.Name == name {
			return true
		}
	}

	return false
}

func allStageNames(job *jobgen.PipelineJob) []string {
	var names []string

	for _, stage := range job.Stages {
		names = append(names, stage.Name)
	}

	return names
}
