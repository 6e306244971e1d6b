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
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

const (
	gotoolchainCommand         = "gotoolchain"
	gotoolchainDescription     = "Subcommands for the Go toolchain a run builds with"
	gotoolchainDescriptionLong = ``
)

type gotoolchainOptions struct {
}

func (o *gotoolchainOptions) AddFlags(fs *flag.FlagSet, markRequired func(string)) {
}

func (o *gotoolchainOptions) print() {
}

func gotoolchainCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   gotoolchainCommand,
		Short: gotoolchainDescription,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			o.print()
		},
		Long: gotoolchainDescriptionLong,
	}

	o.AddFlags(cmd.PersistentFlags(), mustMarkRequired(cmd.MarkPersistentFlagRequired))

	cmd.AddCommand(gotoolchainURLCmd(o))
	cmd.AddCommand(gotoolchainFetchCmd(o))

	return cmd
}
