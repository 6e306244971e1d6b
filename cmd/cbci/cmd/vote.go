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
	"strings"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"k8s.io/utils/env"

	"github.com/couchbase/tools-ci/pkg/gerrit"
	"github.com/couchbase/tools-ci/pkg/jobs"
)

const (
	voteCommand         = "vote"
	voteDescription     = "Post a verification vote on the patchset under test"
	voteLongDescription = `vote posts a Verified score and a result message back to the Gerrit change a
commit-validation run was triggered for.

The Gerrit server, patchset revision and change details are read from the
GERRIT_* variables the trigger exports. When no patchset revision is set,
which is the case for manually started runs, the command logs that there is
nothing to report and exits successfully.

Runs whose job type is configured to report silently skip voting entirely.

The message defaults to the run's result page link followed by the outcome,
e.g. "https://cv.jenkins.couchbase.com/job/backup.linux.cv/job/master/103/ : SUCCESS".`
)

var (
	voteExample = fmt.Sprintf(`
To vote +1 on the patchset a triggered run is testing:

	%s %s --verified=1

To record a failure without an OpenSSH client on the node:

	%s %s --verified=-1 --native --key-file=$HOME/.ssh/id_buildbot
`, rootCommand, voteCommand, rootCommand, voteCommand)
)

type voteOptions struct {
	// Verified is the score to post; one of -1, 0 or 1.
	Verified int

	// Message is the review message. Empty composes the default result-link
	// message from JOB_NAME and BUILD_NUMBER.
	Message string

	// SSHUser is the account the vote is posted as.
	SSHUser string

	// ServerURL is the CI server base URL used in the default message.
	ServerURL string

	// Native posts the review over the built-in SSH client instead of
	// shelling out to ssh. Requires KeyFile.
	Native bool

	// KeyFile is the private key used by the built-in SSH client.
	KeyFile string

	// DryRun prints the review command instead of running it.
	DryRun bool
}

func (o *voteOptions) AddFlags(fs *flag.FlagSet, markRequired func(string)) {
	fs.IntVar(&o.Verified, "verified", 0, "Verified score to post; one of -1, 0 or 1.")
	fs.StringVar(&o.Message, "message", "", "Review message. Defaults to the run's result link and outcome.")
	fs.StringVar(&o.SSHUser, "ssh-user", defaultSSHUser, "Account to post the review as.")
	fs.StringVar(&o.ServerURL, "server-url", defaultResultServerURL, "CI server base URL used in the default message.")
	fs.BoolVar(&o.Native, "native", false, "If true, post the review over the built-in SSH client instead of the ssh binary.")
	fs.StringVar(&o.KeyFile, "key-file", "", "Private key file for the built-in SSH client; required with --native.")
	fs.BoolVar(&o.DryRun, "dry-run", false, "If true, print the review command instead of running it.")

	markRequired("verified")
}

func (o *voteOptions) print() {
	log.Printf("%s options:", voteCommand)
	log.Printf("  Verified: %d", o.Verified)
	log.Printf("  Message: %q", o.Message)
	log.Printf("  SSHUser: %q", o.SSHUser)
	log.Printf("  ServerURL: %q", o.ServerURL)
	log.Printf("  Native: %t", o.Native)
	log.Printf("  KeyFile: %q", o.KeyFile)
	log.Printf("  DryRun: %t", o.DryRun)
}

func voteCmd(rootOpts *rootOptions) *cobra.Command {
	o := &voteOptions{}

	cmd := &cobra.Command{
		Use:          voteCommand,
		Short:        voteDescription,
		Long:         voteLongDescription,
		Example:      voteExample,
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			o.print()
			log.Printf("---")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVote(cmd.Context(), rootOpts, o)
		},
	}

	o.AddFlags(cmd.Flags(), mustMarkRequired(cmd.MarkFlagRequired))

	return cmd
}

func runVote(ctx context.Context, rootOpts *rootOptions, o *voteOptions) error {
	if o.Verified < -1 || o.Verified > 1 {
		return fmt.Errorf("invalid --verified score %d; must be one of -1, 0 or 1", o.Verified)
	}

	cfg, err := rootOpts.loadConfig()
	if err != nil {
		return err
	}

	build := jobs.BuildEnvFromEnviron()

	// Silent job types run the full suite but keep the result off the
	// review. A job name that doesn't resolve doesn't block the vote; manual
	// runs already rely on the no-revision no-op below.
	if build.JobName != "" {
		resolution, err := jobs.Resolve(cfg, build.JobName, build.Branch)
		if err != nil {
			log.Printf("Could not resolve job name %q: %s", build.JobName, err.Error())
		} else if resolution.Silent {
			log.Printf("Job type %q reports silently, not posting a review", resolution.JobType)
			return nil
		}
	}

	message := o.Message
	if message == "" {
		if build.JobName == "" {
			return fmt.Errorf("no --message given and JOB_NAME is not set")
		}

		message = fmt.Sprintf("%s : %s", jobs.ResultURL(o.ServerURL, build.JobName, build.BuildNumber), statusForScore(o.Verified))
	}

	gerritEnv := gerrit.Env{
		PatchsetRevision: env.GetString(gerrit.EnvPatchsetRevision, ""),
		Host:             env.GetString(gerrit.EnvHost, defaultGerritHost),
		Port:             env.GetString(gerrit.EnvPort, defaultGerritPort),
		Project:          env.GetString(gerrit.EnvProject, ""),
		Refspec:          env.GetString(gerrit.EnvRefspec, ""),
		ChangeID:         env.GetString(gerrit.EnvChangeID, ""),
	}

	review := gerrit.Review{
		Message:  message,
		Verified: o.Verified,
		Revision: gerritEnv.PatchsetRevision,
	}

	if o.DryRun {
		log.Printf("Dry run; would run: %s", strings.Join(gerritEnv.ReviewCommand(o.SSHUser, review), " "))
		return nil
	}

	if o.Native {
		if o.KeyFile == "" {
			return fmt.Errorf("the --key-file flag must be set when --native is used")
		}

		submitter := &gerrit.SSHSubmitter{User: o.SSHUser, KeyFile: o.KeyFile}

		return submitter.Submit(gerritEnv, review)
	}

	return gerrit.Submit(ctx, gerritEnv, o.SSHUser, review)
}

// statusForScore maps a verified score onto the outcome word review messages
// end with.
func statusForScore(score int) string {
	switch {
	case score > 0:
		return "SUCCESS"
	case score < 0:
		return "FAILURE"
	default:
		return "UNSTABLE"
	}
}
