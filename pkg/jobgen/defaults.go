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
	_ "embed"
	"fmt"

	"sigs.k8s.io/yaml"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults carries the site-wide values shared by every generated job.
type Defaults struct {
	// TriggerServerName names the Gerrit server connection the triggers
	// listen on, as configured on the CI server.
	TriggerServerName string `json:"triggerServerName"`

	// TriggerEvents are the Gerrit events that start a run.
	TriggerEvents []string `json:"triggerEvents"`

	// GerritFetchURL is the base SSH URL the checkout stage fetches
	// patchsets from.
	GerritFetchURL string `json:"gerritFetchURL"`
}

// LoadDefaults parses the embedded site defaults. Strict parsing: a typo in
// the bundled file should fail generation, not silently drop a field.
func LoadDefaults() (Defaults, error) {
	d := Defaults{}
	if err := yaml.UnmarshalStrict(defaultsYAML, &d); err != nil {
		return Defaults{}, err
	}

	if d.TriggerServerName == "" || d.GerritFetchURL == "" || len(d.TriggerEvents) == 0 {
		return Defaults{}, fmt.Errorf("embedded defaults are incomplete: %+v", d)
	}

	return d, nil
}
