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

// PipelineContext holds the jobs generated for one project and the values
// they are parameterised on.
type PipelineContext struct {
	// Project is the short name jobs are named after, e.g. 'backup'.
	Project string

	// GerritProject is the repository patchsets are fetched from. It usually
	// matches Project but does not have to.
	GerritProject string

	// Branches to generate jobs for. Every job type is generated once per
	// branch since node labels are branch-specific.
	Branches []string

	// GoVersion is the toolchain the generated stages install. The value
	// 'latest' tracks the newest stable release instead of pinning one.
	GoVersion string

	// UIBuild marks projects that ship a web UI and need the npm stages.
	UIBuild bool

	// Config supplies the node labels and silent job types the jobs are
	// generated against.
	Config jobs.Config

	// Defaults carries the site-wide trigger values.
	Defaults Defaults

	jobs []*PipelineJob
}

// Add records one copy of the job per configured branch, filling in the
// branch-specific fields.
func (pc *PipelineContext) Add(osType string, job *PipelineJob) {
	for _, branch := range pc.Branches {
		branchJob := *job

		branchJob.Branch = branch
		branchJob.NodeLabel = pc.Config.NodeLabel(osType, branch)
		branchJob.Trigger = &GerritTrigger{
			ServerName: pc.Defaults.TriggerServerName,
			Project:    pc.GerritProject,
			Branches:   []string{branch},
			SilentMode: pc.Config.Silent(osType),
			Events:     pc.Defaults.TriggerEvents,
		}

		pc.jobs = append(pc.jobs, &branchJob)
	}
}

// JobFile returns everything added so far as a single marshalable file.
func (pc *PipelineContext) JobFile() *JobFile {
	return &JobFile{Jobs: pc.jobs}
}

// jobName builds the job path for a job type, e.g. 'backup.linux.cv'.
func (pc *PipelineContext) jobName(osType string) string {
	return fmt.Sprintf("%s.%s.cv", pc.Project, osType)
}
