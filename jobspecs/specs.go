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
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/couchbase/tools-ci/pkg/jobgen"
	"github.com/couchbase/tools-ci/pkg/jobs"
)

// projects specifies a ProjectSpec for each project with commit validation.
// THIS IS WHAT YOU'RE MOST LIKELY TO NEED TO EDIT
// Branches and Go versions need updating as projects cut release branches or
// move to newer toolchains.
var projects map[string]ProjectSpec = map[string]ProjectSpec{
	"backup": ProjectSpec{
		pipelineContext: &jobgen.PipelineContext{
			Project: "backup",

			// backup reviews live under the same name on the gerrit server
			GerritProject: "backup",

			Branches:  []string{"master", "neo"},
			GoVersion: "1.22.4",
		},
		osTypes: []string{"linux", "windows", "macos", "aarch64-linux"},
	},
	"cbmultimanager": ProjectSpec{
		pipelineContext: &jobgen.PipelineContext{
			Project:       "cbmultimanager",
			GerritProject: "cbmultimanager",

			Branches:  []string{"master", "neo"},
			GoVersion: "1.22.4",
		},

		// NB: no windows entry; cbmultimanager doesn't ship windows binaries
		osTypes: []string{"linux", "macos", "aarch64-linux"},
	},
	"cbbs": ProjectSpec{
		pipelineContext: &jobgen.PipelineContext{
			Project:       "cbbs",
			GerritProject: "cbbs",

			Branches: []string{"master"},

			// cbbs tracks the latest released toolchain rather than pinning
			GoVersion: "latest",

			// cbbs ships a web UI alongside the Go service
			UIBuild: true,
		},
		osTypes: []string{"linux"},
	},
}

// ProjectSpec holds the specification of the commit-validation suite for one
// project: the pipeline context naming the repo, branches and toolchain, and
// the OS types jobs are generated for.
type ProjectSpec struct {
	pipelineContext *jobgen.PipelineContext

	osTypes []string
}

// GenerateJobFile creates the complete job file for the project against the
// given site configuration. The spec itself is not modified, so generating
// twice yields the same file.
func (s *ProjectSpec) GenerateJobFile(cfg jobs.Config) (*jobgen.JobFile, error) {
	defaults, err := jobgen.LoadDefaults()
	if err != nil {
		return nil, err
	}

	ctx := *s.pipelineContext
	ctx.Config = cfg
	ctx.Defaults = defaults

	for _, osType := range s.osTypes {
		ctx.Add(osType, jobgen.CommitValidation(&ctx, osType))
	}

	return ctx.JobFile(), nil
}

// KnownProjects returns the names of every project jobs can be generated
// for.
func KnownProjects() string {
	return strings.Join(sets.StringKeySet(projects).List(), ", ")
}

// SpecForProject returns the spec for the named project, if it exists.
func SpecForProject(name string) (ProjectSpec, error) {
	spec, ok := projects[strings.ToLower(name)]
	if !ok {
		return ProjectSpec{}, fmt.Errorf("unknown project %q; known projects are %q", name, KnownProjects())
	}

	return spec, nil
}
