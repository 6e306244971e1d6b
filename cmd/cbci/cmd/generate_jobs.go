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

package cmd

// Note for developers:
// If you want to edit how jobs are generated, change: ./pkg/jobgen/
// If you want to edit which projects, branches or OS types get jobs, change: ./jobspecs/

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"github.com/couchbase/tools-ci/jobspecs"
)

const (
	generateJobsCommand         = "generate-jobs"
	generateJobsDescription     = "Generate YAML specifying the commit-validation jobs for a project"
	generateJobsLongDescription = `generate-jobs creates the commit-validation job specifications for a given
project. These specifications define the jobs the seed job maintains on the
CI server, one per OS type and branch.

By generating this config we avoid the need for humans to edit YAML manually
which is error-prone.`
)

var (
	generateJobsExample = fmt.Sprintf(`
To generate the jobs for the backup project:

	%s %s --project=backup
`, rootCommand, generateJobsCommand)
)

type generateJobsOptions struct {
	// Project specifies the name of the project whose jobs should be generated
	Project string
}

func (o *generateJobsOptions) AddFlags(fs *flag.FlagSet, markRequired func(string)) {
	fs.StringVar(&o.Project, "project", "", fmt.Sprintf("Project to generate jobs for; one of %s", jobspecs.KnownProjects()))

	markRequired("project")
}

func generateJobsCmd(rootOpts *rootOptions) *cobra.Command {
	o := &generateJobsOptions{}

	cmd := &cobra.Command{
		Use:          generateJobsCommand,
		Short:        generateJobsDescription,
		Long:         generateJobsLongDescription,
		Example:      generateJobsExample,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateJobs(rootOpts, o)
		},
	}

	o.AddFlags(cmd.Flags(), mustMarkRequired(cmd.MarkFlagRequired))

	return cmd
}

// sanitizedArgs strips the path from the command which was used to invoke the
// tool, so we don't include things like "/home/jenkins/bin/cbci"
func sanitizedArgs() []string {
	args := os.Args[:]
	args[0] = filepath.Base(args[0])

	return args
}

func runGenerateJobs(rootOpts *rootOptions, o *generateJobsOptions) error {
	spec, err := jobspecs.SpecForProject(o.Project)
	if err != nil {
		return err
	}

	cfg, err := rootOpts.loadConfig()
	if err != nil {
		return err
	}

	jobFile, err := spec.GenerateJobFile(cfg)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(jobFile)
	if err != nil {
		return err
	}

	prelude := fmt.Sprintf(
		`# THIS FILE HAS BEEN AUTOMATICALLY GENERATED
# Don't manually edit it; instead edit the "cbci" tool which generated it
# Generated with: %s

`,
		strings.Join(sanitizedArgs(), " "),
	)

	fmt.Println(prelude + string(out))

	return nil
}
