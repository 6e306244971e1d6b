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
	"strings"

	"k8s.io/utils/env"
)

// BuildEnv holds the values the CI engine exports to every run. All fields
// are optional at this level; commands that require one validate it
// themselves.
type BuildEnv struct {
	// JobName is the value of JOB_NAME.
	JobName string

	// Branch is the value of BRANCH_NAME.
	Branch string

	// BuildNumber is the value of BUILD_NUMBER.
	BuildNumber string

	// Workspace is the value of WORKSPACE, the job's working directory on
	// the build node.
	Workspace string
}

// BuildEnvFromEnviron reads the build environment exported by the CI engine.
func BuildEnvFromEnviron() BuildEnv {
	return BuildEnv{
		JobName:     env.GetString("JOB_NAME", ""),
		Branch:      env.GetString("BRANCH_NAME", ""),
		BuildNumber: env.GetString("BUILD_NUMBER", ""),
		Workspace:   env.GetString("WORKSPACE", ""),
	}
}

// ResultURL composes the link to a run's result page. Each '/' in a job name
// is a folder boundary in the CI engine's URL space, so
// 'backup.linux.cv/master' build 12 becomes
// '<server>/job/backup.linux.cv/job/master/12/'.
func ResultURL(serverURL, jobName, buildNumber string) string {
	b := &strings.Builder{}
	b.WriteString(strings.TrimSuffix(serverURL, "/"))
	for _, segment := range strings.Split(jobName, "/") {
		b.WriteString("/job/")
		b.WriteString(segment)
	}
	b.WriteString("/")
	if buildNumber != "" {
		b.WriteString(buildNumber)
		b.WriteString("/")
	}
	return b.String()
}
