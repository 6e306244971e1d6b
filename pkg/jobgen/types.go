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

// The generated files are consumed by the seed job that maintains the
// commit-validation pipelines on the CI server. The structs below only carry
// the fields that seed job actually reads.

type JobFile struct {
	Jobs []*PipelineJob `yaml:"jobs"`
}

type PipelineJob struct {
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// Branch the job validates changes for. Node labels are branch-specific
	// so each branch gets its own entry under the same name.
	Branch string `yaml:"branch"`

	NodeLabel string `yaml:"nodeLabel"`

	TimeoutMinutes int `yaml:"timeoutMinutes,omitempty"`

	DisableConcurrentBuilds bool `yaml:"disableConcurrentBuilds,omitempty"`

	Environment map[string]string `yaml:"environment,omitempty"`

	Trigger *GerritTrigger `yaml:"trigger,omitempty"`

	Stages []Stage `yaml:"stages"`
}

type Stage struct {
	Name string `yaml:"name"`

	Shell []string `yaml:"shell"`

	TimeoutMinutes int `yaml:"timeoutMinutes,omitempty"`

	ArchiveArtifacts []string `yaml:"archiveArtifacts,omitempty"`
}

type GerritTrigger struct {
	ServerName string `yaml:"serverName"`

	Project string `yaml:"project"`

	Branches []string `yaml:"branches"`

	// SilentMode suppresses the vote and comment the trigger would post
	// back when the run finishes.
	SilentMode bool `yaml:"silentMode"`

	Events []string `yaml:"events"`
}
