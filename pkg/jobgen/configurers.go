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

type JobConfigurer func(*PipelineJob)

// jobTemplate defines a 'default' job, where standard parameters can be set.
// All jobs should have a name and a friendly description of what they do.
// Callers can also pass a list of "configurers" which will modify the
// template before it's returned for use.
func jobTemplate(name string, description string, configurers ...JobConfigurer) *PipelineJob {
	job := &PipelineJob{
		Name:        name,
		Description: description,
		Environment: make(map[string]string),
	}

	for _, c := range configurers {
		c(job)
	}

	return job
}

// addGoEnvironment points the job at the toolchain the fetch stage installs
// into the workspace.
func addGoEnvironment(job *PipelineJob) {
	job.Environment["GOROOT"] = "$WORKSPACE/go"
	job.Environment["PATH+GOROOT"] = "$WORKSPACE/go/bin"
}

// addGoCacheEnvironment keeps the build cache inside the workspace so runs
// on shared agents don't trample each other.
func addGoCacheEnvironment(job *PipelineJob) {
	job.Environment["GOCACHE"] = "$WORKSPACE/.gocache"
}

// addNpmCacheEnvironment does the same for the npm cache on UI builds.
func addNpmCacheEnvironment(job *PipelineJob) {
	job.Environment["npm_config_cache"] = "$WORKSPACE/.npm"
}

func withTimeout(minutes int) JobConfigurer {
	return func(job *PipelineJob) {
		job.TimeoutMinutes = minutes
	}
}

func disableConcurrentBuilds(job *PipelineJob) {
	job.DisableConcurrentBuilds = true
}
