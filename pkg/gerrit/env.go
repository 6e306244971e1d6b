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

// Package gerrit covers the two sides of a commit-validation run's contract
// with Gerrit: the trigger environment the run starts from, and the
// verification vote it posts back.
package gerrit

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"
)

// The variables the Gerrit trigger parameterises a commit-validation run
// with. A job missing any of them cannot check out the patchset under test,
// let alone vote on it.
const (
	EnvPatchsetRevision = "GERRIT_PATCHSET_REVISION"
	EnvHost             = "GERRIT_HOST"
	EnvPort             = "GERRIT_PORT"
	EnvProject          = "GERRIT_PROJECT"
	EnvRefspec          = "GERRIT_REFSPEC"
	EnvChangeID         = "GERRIT_CHANGE_ID"
)

// Env carries the values of the Gerrit trigger variables.
type Env struct {
	// PatchsetRevision is the SHA of the patchset under test.
	PatchsetRevision string

	// Host is the Gerrit server hostname.
	Host string

	// Port is the Gerrit SSH port.
	Port string

	// Project is the Gerrit project the change belongs to.
	Project string

	// Refspec is the ref the patchset is fetched from.
	Refspec string

	// ChangeID is the Change-Id of the change under test.
	ChangeID string
}

// EnvFromEnviron reads the trigger variables from the process environment.
// Unset and empty both count as missing. Missing variables accumulate and
// surface as a single error naming every one of them, so a misconfigured
// trigger shows the whole problem in one run rather than one variable at a
// time.
func EnvFromEnviron() (Env, error) {
	var missing []string

	lookup := func(key string) string {
		val := os.Getenv(key)
		if val == "" {
			missing = append(missing, key)
		}
		return val
	}

	env := Env{
		PatchsetRevision: lookup(EnvPatchsetRevision),
		Host:             lookup(EnvHost),
		Port:             lookup(EnvPort),
		Project:          lookup(EnvProject),
		Refspec:          lookup(EnvRefspec),
		ChangeID:         lookup(EnvChangeID),
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		return Env{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return env, nil
}
