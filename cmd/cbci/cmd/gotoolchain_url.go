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

	"github.com/couchbase/tools-ci/pkg/gotoolchain"
	"github.com/couchbase/tools-ci/pkg/jobs"
)

const (
	gotoolchainURLCommand         = "url"
	gotoolchainURLDescription     = "Print the download URL for a Go toolchain archive"
	gotoolchainURLLongDescription = `url prints the URL the toolchain archive for a given Go version and job type
is downloaded from, without downloading anything.

The job type defaults to the one in JOB_NAME, so a pipeline stage only has to
pass the version.`
)

var (
	gotoolchainURLExample = fmt.Sprintf(`
To print the archive URL the macOS nodes fetch Go 1.22.4 from:

	%s %s %s --go-version=1.22.4 --job-type=macos
`, rootCommand, gotoolchainCommand, gotoolchainURLCommand)
)

type gotoolchainURLOptions struct {
	// GoVersion is the Go release to locate, e.g. "1.22.4".
	GoVersion string

	// JobType selects the OS family suffix. Defaults to the job type in
	// JOB_NAME.
	JobType string

	// LegacyWindowsSuffix forces the historical windows behaviour of
	// falling through to the Linux archive suffix.
	LegacyWindowsSuffix bool
}

func (o *gotoolchainURLOptions) AddFlags(fs *flag.FlagSet, markRequired func(string)) {
	fs.StringVar(&o.GoVersion, "go-version", "", "Go release to locate, e.g. '1.22.4'.")
	fs.StringVar(&o.JobType, "job-type", "", "Job type selecting the OS family. Defaults to the job type in JOB_NAME.")
	fs.BoolVar(&o.LegacyWindowsSuffix, "legacy-windows-suffix", false, "If true, windows URLs use the historical Linux archive suffix.")

	markRequired("go-version")
}

func (o *gotoolchainURLOptions) print() {
	log.Printf("%s options:", gotoolchainURLCommand)
	log.Printf("  GoVersion: %q", o.GoVersion)
	log.Printf("  JobType: %q", o.JobType)
	log.Printf("  LegacyWindowsSuffix: %t", o.LegacyWindowsSuffix)
}

func gotoolchainURLCmd(rootOpts *rootOptions) *cobra.Command {
	o := &gotoolchainURLOptions{}

	cmd := &cobra.Command{
		Use:          gotoolchainURLCommand,
		Short:        gotoolchainURLDescription,
		Long:         gotoolchainURLLongDescription,
		Example:      gotoolchainURLExample,
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			o.print()
			log.Printf("---")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGotoolchainURL(rootOpts, o)
		},
	}

	o.AddFlags(cmd.Flags(), mustMarkRequired(cmd.MarkFlagRequired))

	return cmd
}

func runGotoolchainURL(rootOpts *rootOptions, o *gotoolchainURLOptions) error {
	cfg, err := rootOpts.loadConfig()
	if err != nil {
		return err
	}

	if o.LegacyWindowsSuffix {
		cfg.LegacyWindowsSuffix = true
	}

	jobType, err := jobTypeOrFromEnviron(o.JobType)
	if err != nil {
		return err
	}

	url, err := gotoolchain.DownloadURL(cfg, o.GoVersion, jobType)
	if err != nil {
		return err
	}

	fmt.Println(url)

	return nil
}

// jobTypeOrFromEnviron returns the given job type, falling back to the one
// encoded in JOB_NAME.
func jobTypeOrFromEnviron(jobType string) (string, error) {
	if jobType != "" {
		return jobType, nil
	}

	build := jobs.BuildEnvFromEnviron()
	if build.JobName == "" {
		return "", fmt.Errorf("no --job-type given and JOB_NAME is not set")
	}

	jobType, err := jobs.JobType(build.JobName)
	if err != nil {
		return "", err
	}

	return jobType, nil
}
