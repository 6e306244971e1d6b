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
	"context"
	"fmt"
	"log"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/couchbase/tools-ci/pkg/gotoolchain"
	"github.com/couchbase/tools-ci/pkg/jobs"
)

const (
	gotoolchainFetchCommand         = "fetch"
	gotoolchainFetchDescription     = "Download and install the Go toolchain a run builds with"
	gotoolchainFetchLongDescription = `fetch downloads the Go toolchain archive for the run's OS family, verifies
nothing got truncated, and installs it under the given directory, replacing
whatever toolchain was there before.

The version comes from exactly one of:

- --version, an explicit release like '1.22.4'
- --repo-path, a checkout whose go.mod names the version (its toolchain
  directive wins over the go directive)
- --latest, the newest stable release

Windows nodes carry a preinstalled toolchain and never call this command;
their archives are rejected rather than unpacked.`
)

var (
	gotoolchainFetchExample = fmt.Sprintf(`
To install the toolchain the checkout under test asks for:

	%s %s %s --repo-path=$WORKSPACE/src

To track the latest stable release:

	%s %s %s --latest
`, rootCommand, gotoolchainCommand, gotoolchainFetchCommand, rootCommand, gotoolchainCommand, gotoolchainFetchCommand)
)

type gotoolchainFetchOptions struct {
	// Version is an explicit Go release to install, e.g. "1.22.4".
	Version string

	// RepoPath is a checkout whose go.mod names the version to install.
	RepoPath string

	// Latest installs the newest stable release instead of a named one.
	Latest bool

	// JobType selects the OS family archive. Defaults to the job type in
	// JOB_NAME.
	JobType string

	// InstallDir is where the toolchain ends up; the 'go' tree is placed
	// directly under it. Defaults to $WORKSPACE/go.
	InstallDir string
}

func (o *gotoolchainFetchOptions) AddFlags(fs *flag.FlagSet, markRequired func(string)) {
	fs.StringVar(&o.Version, "version", "", "Explicit Go release to install, e.g. '1.22.4'.")
	fs.StringVar(&o.RepoPath, "repo-path", "", "Checkout whose go.mod names the Go release to install.")
	fs.BoolVar(&o.Latest, "latest", false, "If true, install the newest stable release.")
	fs.StringVar(&o.JobType, "job-type", "", "Job type selecting the OS family. Defaults to the job type in JOB_NAME.")
	fs.StringVar(&o.InstallDir, "install-dir", "", "Directory to install the toolchain under. Defaults to $WORKSPACE/go.")
}

func (o *gotoolchainFetchOptions) print() {
	log.Printf("%s options:", gotoolchainFetchCommand)
	log.Printf("  Version: %q", o.Version)
	log.Printf("  RepoPath: %q", o.RepoPath)
	log.Printf("  Latest: %t", o.Latest)
	log.Printf("  JobType: %q", o.JobType)
	log.Printf("  InstallDir: %q", o.InstallDir)
}

func gotoolchainFetchCmd(rootOpts *rootOptions) *cobra.Command {
	o := &gotoolchainFetchOptions{}

	cmd := &cobra.Command{
		Use:          gotoolchainFetchCommand,
		Short:        gotoolchainFetchDescription,
		Long:         gotoolchainFetchLongDescription,
		Example:      gotoolchainFetchExample,
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			o.print()
			log.Printf("---")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGotoolchainFetch(cmd.Context(), rootOpts, o)
		},
	}

	o.AddFlags(cmd.Flags(), mustMarkRequired(cmd.MarkFlagRequired))

	return cmd
}

func runGotoolchainFetch(ctx context.Context, rootOpts *rootOptions, o *gotoolchainFetchOptions) error {
	installDir := o.InstallDir
	if installDir == "" {
		build := jobs.BuildEnvFromEnviron()
		if build.Workspace == "" {
			return fmt.Errorf("no --install-dir given and WORKSPACE is not set")
		}

		installDir = filepath.Join(build.Workspace, "go")
	}

	sources := 0
	for _, set := range []bool{o.Version != "", o.RepoPath != "", o.Latest} {
		if set {
			sources++
		}
	}

	if sources != 1 {
		return fmt.Errorf("exactly one of --version, --repo-path or --latest must be given")
	}

	if o.Latest {
		version, err := gotoolchain.InstallLatest(runtime.GOOS, runtime.GOARCH, installDir)
		if err != nil {
			return err
		}

		log.Printf("Installed go%s to %q", version, installDir)

		return nil
	}

	version := o.Version
	if version == "" {
		var err error

		version, err = gotoolchain.VersionFromModFile(o.RepoPath)
		if err != nil {
			return err
		}

		log.Printf("Checkout %q asks for go%s", o.RepoPath, version)
	}

	jobType, err := jobTypeOrFromEnviron(o.JobType)
	if err != nil {
		return err
	}

	cfg, err := rootOpts.loadConfig()
	if err != nil {
		return err
	}

	url, err := gotoolchain.DownloadURL(cfg, version, jobType)
	if err != nil {
		return err
	}

	if _, err := gotoolchain.Fetch(ctx, url, installDir); err != nil {
		return err
	}

	log.Printf("Installed go%s to %q", version, installDir)

	return nil
}
