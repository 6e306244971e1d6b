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

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/couchbase/tools-ci/pkg/jobs"
)

const (
	resolveCommand         = "resolve"
	resolveDescription     = "Resolve a job name into the settings a run derives from it"
	resolveLongDescription = `resolve parses a job name of the form <project>.<ostype>[.<variant>]/<branch>
and prints everything the pipelines derive from it: the project under test,
the job type and its OS family, the node label the run should be scheduled on
and whether review feedback is posted silently.

The job name and branch default to JOB_NAME and BRANCH_NAME, so a pipeline
stage can call it with no arguments.`
)

var (
	resolveExample = fmt.Sprintf(`
To resolve the backup Linux commit-validation job on master:

	%s %s --job-name=backup.linux.cv --branch=master
`, rootCommand, resolveCommand)
)

type resolveOptions struct {
	// JobName is the job name to resolve. Defaults to JOB_NAME.
	JobName string

	// Branch is the branch under test, appended to the node label.
	// Defaults to BRANCH_NAME.
	Branch string

	// Format selects the output encoding; one of "text" or "yaml".
	Format string
}

func (o *resolveOptions) AddFlags(fs *flag.FlagSet, markRequired func(string)) {
	fs.StringVar(&o.JobName, "job-name", "", "Job name to resolve. Defaults to the value of JOB_NAME.")
	fs.StringVar(&o.Branch, "branch", "", "Branch under test. Defaults to the value of BRANCH_NAME.")
	fs.StringVar(&o.Format, "format", "text", "Output format; one of 'text' or 'yaml'.")
}

func (o *resolveOptions) print() {
	log.Printf("%s options:", resolveCommand)
	log.Printf("  JobName: %q", o.JobName)
	log.Printf("  Branch: %q", o.Branch)
	log.Printf("  Format: %q", o.Format)
}

func resolveCmd(rootOpts *rootOptions) *cobra.Command {
	o := &resolveOptions{}

	cmd := &cobra.Command{
		Use:          resolveCommand,
		Short:        resolveDescription,
		Long:         resolveLongDescription,
		Example:      resolveExample,
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			o.print()
			log.Printf("---")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, o)
		},
	}

	o.AddFlags(cmd.Flags(), mustMarkRequired(cmd.MarkFlagRequired))

	return cmd
}

func runResolve(rootOpts *rootOptions, o *resolveOptions) error {
	build := jobs.BuildEnvFromEnviron()

	jobName := o.JobName
	if jobName == "" {
		jobName = build.JobName
	}

	if jobName == "" {
		return fmt.Errorf("no --job-name given and JOB_NAME is not set")
	}

	branch := o.Branch
	if branch == "" {
		branch = build.Branch
	}

	cfg, err := rootOpts.loadConfig()
	if err != nil {
		return err
	}

	resolution, err := jobs.Resolve(cfg, jobName, branch)
	if err != nil {
		return err
	}

	out, err := renderResolution(resolution, o.Format)
	if err != nil {
		return err
	}

	fmt.Print(out)

	return nil
}

func renderResolution(r jobs.Resolution, format string) (string, error) {
	switch format {
	case "text":
		return fmt.Sprintf("project: %s\njobType: %s\nfamily: %s\nnodeLabel: %s\nsilent: %t\n",
			r.Project, r.JobType, r.Family, r.NodeLabel, r.Silent), nil

	case "yaml":
		out, err := yaml.Marshal(r)
		if err != nil {
			return "", err
		}

		return string(out), nil

	default:
		return "", fmt.Errorf("unknown format %q; must be one of 'text' or 'yaml'", format)
	}
}
