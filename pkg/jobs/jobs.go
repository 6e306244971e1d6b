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
	"fmt"
	"strings"
)

// Name is the parsed form of a Jenkins job name of the shape
// '<project>.<ostype>[.<variant>...]/<branch>', e.g. 'backup.linux.cv/master'.
type Name struct {
	// Project is the name of the project under test, e.g. 'backup' or
	// 'cbbs'. It is the first dot-separated segment of the job path.
	Project string

	// OSType is the OS the job runs against, e.g. 'linux', 'macos',
	// 'windows' or 'aarch64-linux'. It is the second dot-separated segment
	// of the job path.
	OSType string

	// Variant holds any remaining dot-separated segments joined back
	// together, e.g. 'cv' for commit-validation jobs. It may be empty.
	Variant string

	// Branch is everything after the first '/' in the job name. For
	// multibranch jobs this is the branch the run was triggered for.
	Branch string
}

// MalformedNameError is returned when a job name does not have the
// '<project>.<ostype>[...]/<branch>' shape this tool requires.
type MalformedNameError struct {
	// Name is the job name that failed to parse.
	Name string

	// Reason describes which part of the expected shape was missing.
	Reason string
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("malformed job name %q: %s", e.Name, e.Reason)
}

// ParseName parses a raw JOB_NAME value. The part before the first '/' must
// contain at least a project and an OS type segment separated by '.'; a name
// that does not is rejected rather than yielding garbage derived values.
func ParseName(jobName string) (Name, error) {
	path, branch, found := strings.Cut(jobName, "/")
	if !found {
		return Name{}, &MalformedNameError{Name: jobName, Reason: "expected '/' separating job path from branch"}
	}

	segments := strings.Split(path, ".")
	if len(segments) < 2 {
		return Name{}, &MalformedNameError{Name: jobName, Reason: "expected at least '<project>.<ostype>' before '/'"}
	}
	if segments[0] == "" {
		return Name{}, &MalformedNameError{Name: jobName, Reason: "empty project segment"}
	}
	if segments[1] == "" {
		return Name{}, &MalformedNameError{Name: jobName, Reason: "empty OS type segment"}
	}

	return Name{
		Project: segments[0],
		OSType:  segments[1],
		Variant: strings.Join(segments[2:], "."),
		Branch:  branch,
	}, nil
}

// Project returns the project encoded in the given job name, i.e. the first
// dot-separated segment before the '/'.
func Project(jobName string) (string, error) {
	name, err := ParseName(jobName)
	if err != nil {
		return "", err
	}
	return name.Project, nil
}

// JobType returns the OS type encoded in the given job name, i.e. the second
// dot-separated segment before the '/'.
func JobType(jobName string) (string, error) {
	name, err := ParseName(jobName)
	if err != nil {
		return "", err
	}
	return name.OSType, nil
}

// Resolution bundles everything the pipelines derive from a job name. It is
// computed once per run and handed to the CI engine as strings.
type Resolution struct {
	// Project under test, from the job name.
	Project string `json:"project"`

	// JobType is the raw OS type segment from the job name.
	JobType string `json:"jobType"`

	// Family is the recognised OS family the job type maps onto.
	Family OSFamily `json:"family"`

	// NodeLabel is the node-selector expression the job should run on.
	NodeLabel string `json:"nodeLabel"`

	// Silent reports whether review feedback for this job should be
	// suppressed.
	Silent bool `json:"silent"`
}

// Resolve derives the full Resolution for a job name against the given
// configuration. The branch is appended to the node label and is usually
// sourced from BRANCH_NAME rather than the job name itself.
func Resolve(cfg Config, jobName, branch string) (Resolution, error) {
	name, err := ParseName(jobName)
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{
		Project:   name.Project,
		JobType:   name.OSType,
		Family:    FamilyForType(name.OSType),
		NodeLabel: cfg.NodeLabel(name.OSType, branch),
		Silent:    cfg.Silent(name.OSType),
	}, nil
}
