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

const (
	// defaultGerritHost and defaultGerritPort are where review.couchbase.org
	// answers SSH; these change rarely enough that hardcoding them as
	// defaults makes manual cbci invocations much less painful. Triggered
	// runs override them from GERRIT_HOST/GERRIT_PORT anyway.
	defaultGerritHost = "review.couchbase.org"
	defaultGerritPort = "29418"

	// defaultSSHUser is the service account the build nodes vote as.
	defaultSSHUser = "buildbot"

	// defaultResultServerURL is the CI server result links point at.
	defaultResultServerURL = "https://cv.jenkins.couchbase.com"
)
