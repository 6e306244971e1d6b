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
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

// sshDialTimeout bounds the connection attempt; a wedged TCP connect should
// fail the vote stage rather than hang the whole job.
const sshDialTimeout = 30 * time.Second

// SSHSubmitter posts reviews over a direct SSH connection rather than by
// shelling out, for agents without an OpenSSH client on PATH.
type SSHSubmitter struct {
	// User is the account the vote is posted as.
	User string

	// KeyFile is the path of the private key to authenticate with.
	KeyFile string

	// HostKeyCallback may be set to pin the server host key. When nil any
	// host key is accepted, matching how the agents run the ssh client.
	HostKeyCallback ssh.HostKeyCallback
}

// Submit posts the review over a direct SSH connection. The remote command,
// the fire-and-forget contract and the empty-revision no-op all match the
// package-level Submit.
func (s *SSHSubmitter) Submit(env Env, r Review) error {
	if r.Revision == "" {
		log.Printf("No patchset revision set, nothing to report to gerrit")
		return nil
	}

	key, err := os.ReadFile(s.KeyFile)
	if err != nil {
		return errors.Wrap(err, "failed to read ssh private key")
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return errors.Wrap(err, "failed to parse ssh private key")
	}

	hostKeyCallback := s.HostKeyCallback
	if hostKeyCallback == nil {
		hostKeyCallback = ssh.InsecureIgnoreHostKey()
	}

	config := &ssh.ClientConfig{
		User:            s.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         sshDialTimeout,
	}

	client, err := ssh.Dial("tcp", net.JoinHostPort(env.Host, env.Port), config)
	if err != nil {
		return errors.Wrapf(err, "failed to dial gerrit at %q", env.Host)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return errors.Wrap(err, "failed to open ssh session")
	}
	defer session.Close()

	command := strings.Join(remoteCommand(r), " ")
	log.Printf("Posting review: %s", command)

	out, err := session.CombinedOutput(command)
	if len(out) > 0 {
		log.Printf("gerrit: %s", strings.TrimSpace(string(out)))
	}
	if err != nil {
		return errors.Wrap(err, "failed to post review to gerrit")
	}

	return nil
}
