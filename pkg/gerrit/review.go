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

package gerrit

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Review is a verification vote to post on the change under test.
type Review struct {
	// Message is the comment posted with the vote, usually the job's result
	// URL and outcome.
	Message string

	// Verified is the value for the Verified label, +1 on success and -1 on
	// failure.
	Verified int

	// Revision is the SHA the vote applies to.
	Revision string
}

// remoteCommand is the command executed on the Gerrit server itself. The
// message is single-quoted because Gerrit splits the remote command line on
// whitespace again; the quoting is part of the wire contract and is pinned by
// tests.
func remoteCommand(r Review) []string {
	return []string{
		"gerrit", "review",
		"-m", fmt.Sprintf("'%s'", r.Message),
		"--verified", verifiedFlag(r.Verified),
		r.Revision,
	}
}

// verifiedFlag formats a Verified score with an explicit sign for positive
// votes, the form the review command expects.
func verifiedFlag(score int) string {
	if score > 0 {
		return fmt.Sprintf("+%d", score)
	}
	return strconv.Itoa(score)
}

// ReviewCommand returns the argv run on the agent to post the review over
// SSH.
func (e Env) ReviewCommand(user string, r Review) []string {
	argv := []string{"ssh", "-p", e.Port, fmt.Sprintf("%s@%s", user, e.Host)}
	return append(argv, remoteCommand(r)...)
}

// Submit posts the review by running the ssh client on the agent, with
// output passed through to the job log. Votes are fire and forget: a failure
// to post is reported but nothing retries, the next patchset triggers a fresh
// run anyway.
//
// When the revision is empty the run was not triggered by a patchset (e.g. a
// manual rebuild) and there is nothing to vote on; Submit logs that and
// returns without error.
func Submit(ctx context.Context, env Env, user string, r Review) error {
	if r.Revision == "" {
		log.Printf("No patchset revision set, nothing to report to gerrit")
		return nil
	}

	argv := env.ReviewCommand(user, r)
	log.Printf("Posting review: %s", strings.Join(argv, " "))

	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return errors.Wrap(err, "failed to post review to gerrit")
	}

	return nil
}
