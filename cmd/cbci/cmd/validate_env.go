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

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/couchbase/tools-ci/pkg/gerrit"
	"github.com/couchbase/tools-ci/pkg/jobs"
)

const (
	validateEnvCommand         = "validate-env"
	validateEnvDescription     = "Check that a commit-validation run has the environment it needs"
	validateEnvLongDescription = `validate-env checks the process environment a commit-validation run was
started with, before any build work happens.

Ensures that:

- All six GERRIT_* variables the trigger exports are present, so the patchset
  can be checked out and voted on
- JOB_NAME is set and well formed, so the run can derive its project and job
  type
- WORKSPACE is set, so toolchains have somewhere to be installed

A misconfigured job fails here with every missing variable named, rather than
failing one stage at a time.`
)

type validateEnvOptions struct {
}

func (o *validateEnvOptions) AddFlags(fs *flag.FlagSet, markRequired func(string)) {
}

func (o *validateEnvOptions) print() {
	log.Printf("%s options:", validateEnvCommand)
}

func validateEnvCmd(rootOpts *rootOptions) *cobra.Command {
	o := &validateEnvOptions{}

	cmd := &cobra.Command{
		Use:          validateEnvCommand,
		Short:        validateEnvDescription,
		Long:         validateEnvLongDescription,
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			o.print()
			log.Printf("---")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateEnv(rootOpts, o)
		},
	}

	o.AddFlags(cmd.Flags(), mustMarkRequired(cmd.MarkFlagRequired))

	return cmd
}

func runValidateEnv(rootOpts *rootOptions, o *validateEnvOptions) error {
	var validationErrors []error

	if _, err := gerrit.EnvFromEnviron(); err != nil {
		validationErrors = append(validationErrors, err)
	}

	cfg, err := rootOpts.loadConfig()
	if err != nil {
		return err
	}

	build := jobs.BuildEnvFromEnviron()

	if build.Workspace == "" {
		validationErrors = append(validationErrors, fmt.Errorf("WORKSPACE is not set"))
	}

	if build.JobName == "" {
		validationErrors = append(validationErrors, fmt.Errorf("JOB_NAME is not set"))
	} else if resolution, err := jobs.Resolve(cfg, build.JobName, build.Branch); err != nil {
		validationErrors = append(validationErrors, err)
	} else {
		log.Printf("Resolved job %q:", build.JobName)
		log.Printf("  Project: %q", resolution.Project)
		log.Printf("  JobType: %q", resolution.JobType)
		log.Printf("  NodeLabel: %q", resolution.NodeLabel)
		log.Printf("  Silent: %t", resolution.Silent)
	}

	if len(validationErrors) > 0 {
		log.Println("validation failed! errors:")
		for _, err := range validationErrors {
			log.Printf("  %s", err.Error())
		}

		return fmt.Errorf("validation failed")
	}

	return nil
}
