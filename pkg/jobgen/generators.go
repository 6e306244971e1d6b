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

package jobgen

import (
	"fmt"

	"github.com/couchbase/tools-ci/pkg/jobs"
)

// Per-stage timeouts. The job-level timeout is the backstop; these keep a
// single wedged stage from eating the whole budget.
const (
	checkoutTimeoutMinutes  = 10
	toolchainTimeoutMinutes = 10
	uiBuildTimeoutMinutes   = 20
	buildTimeoutMinutes     = 30
	lintTimeoutMinutes      = 15
	testTimeoutMinutes      = 45
	benchmarkTimeoutMinutes = 20

	jobTimeoutMinutes = 120
)

// CommitValidation generates the commit-validation job for one OS type. The
// stages mirror what a developer runs before pushing: fetch the patchset,
// install the toolchain, build, lint, run the unit tests and a quick pass of
// the benchmarks.
func CommitValidation(pc *PipelineContext, osType string) *PipelineJob {
	job := jobTemplate(
		pc.jobName(osType),
		fmt.Sprintf("Commit validation for %s on %s", pc.Project, osType),
		addGoEnvironment,
		addGoCacheEnvironment,
		withTimeout(jobTimeoutMinutes),
		disableConcurrentBuilds,
	)

	job.Stages = []Stage{
		checkoutStage(pc),
		toolchainStage(pc, osType),
	}

	if pc.UIBuild {
		addNpmCacheEnvironment(job)
		job.Stages = append(job.Stages, uiBuildStage())
	}

	job.Stages = append(job.Stages,
		buildStage(),
		lintStage(),
		unitTestStage(),
		benchmarkStage(),
	)

	return job
}

// checkoutStage fetches the patchset under test rather than the branch head;
// the refspec comes in from the trigger environment.
func checkoutStage(pc *PipelineContext) Stage {
	return Stage{
		Name: "checkout",
		Shell: []string{
			"git init .",
			fmt.Sprintf("git fetch %s/%s $GERRIT_REFSPEC", pc.Defaults.GerritFetchURL, pc.GerritProject),
			"git checkout FETCH_HEAD",
		},
		TimeoutMinutes: checkoutTimeoutMinutes,
	}
}

func toolchainStage(pc *PipelineContext, osType string) Stage {
	// windows agents have their toolchain baked into the image, there is
	// nothing to fetch
	if jobs.FamilyForType(osType) == jobs.FamilyWindows {
		return Stage{
			Name:           "go-toolchain",
			Shell:          []string{"go version"},
			TimeoutMinutes: toolchainTimeoutMinutes,
		}
	}

	fetch := fmt.Sprintf("cbci gotoolchain fetch --version=%s", pc.GoVersion)
	if pc.GoVersion == "latest" {
		fetch = "cbci gotoolchain fetch --latest"
	}

	return Stage{
		Name: "go-toolchain",
		Shell: []string{
			fetch,
			"go version",
		},
		TimeoutMinutes: toolchainTimeoutMinutes,
	}
}

func uiBuildStage() Stage {
	return Stage{
		Name: "ui-build",
		Shell: []string{
			"npm --prefix ui ci",
			"npm --prefix ui run build",
		},
		TimeoutMinutes: uiBuildTimeoutMinutes,
	}
}

func buildStage() Stage {
	return Stage{
		Name:           "build",
		Shell:          []string{"make build"},
		TimeoutMinutes: buildTimeoutMinutes,
	}
}

func lintStage() Stage {
	return Stage{
		Name:           "lint",
		Shell:          []string{"make lint"},
		TimeoutMinutes: lintTimeoutMinutes,
	}
}

func unitTestStage() Stage {
	return Stage{
		Name:             "unit-test",
		Shell:            []string{"make test-unit COVERAGE=true"},
		TimeoutMinutes:   testTimeoutMinutes,
		ArchiveArtifacts: []string{"coverage.out", "coverage.html"},
	}
}

// benchmarkStage runs a single quick iteration of the benchmarks. It is
// there to catch benchmarks that no longer compile or crash, not to produce
// comparable numbers; agents are too noisy for that.
func benchmarkStage() Stage {
	return Stage{
		Name:           "benchmark",
		Shell:          []string{"make bench-quick"},
		TimeoutMinutes: benchmarkTimeoutMinutes,
	}
}
