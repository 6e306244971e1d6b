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
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/couchbase/tools-ci/pkg/jobs"
)

const (
	rootCommand         = "cbci"
	rootDescription     = "Couchbase tools CI helper"
	rootDescriptionLong = `Used by the commit-validation pipelines for the tools projects to resolve job
names into build settings, install Go toolchains, post Gerrit review votes and
generate the pipeline job definitions.`
)

type rootOptions struct {
	// ConfigFile is the path of a YAML file overriding the built-in site
	// configuration. Empty means built-in defaults.
	ConfigFile string
}

func (o *rootOptions) AddFlags(fs *flag.FlagSet, markRequired func(string)) {
	fs.StringVar(&o.ConfigFile, "config", "", "Path of a site configuration file. Defaults are used if not set.")
}

func (o *rootOptions) print() {
	log.Printf("Root options:")
	log.Printf("  ConfigFile: %q", o.ConfigFile)
}

// loadConfig resolves the site configuration the run uses, either the
// built-in defaults or the file named by --config.
func (o *rootOptions) loadConfig() (jobs.Config, error) {
	if o.ConfigFile == "" {
		return jobs.DefaultConfig(), nil
	}

	cfg, err := jobs.LoadConfig(o.ConfigFile)
	if err != nil {
		return jobs.Config{}, fmt.Errorf("failed to load config file %q: %s", o.ConfigFile, err.Error())
	}

	return cfg, nil
}

func rootCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   rootCommand,
		Short: rootDescription,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			o.print()
		},
		Long: rootDescriptionLong,
	}
	o.AddFlags(cmd.PersistentFlags(), mustMarkRequired(cmd.MarkPersistentFlagRequired))
	return cmd
}

// mustMarkRequired will return a func(string) that can be used to mark a flag
// as required.
// If the given MarkRequired func returns an error, it will print the error
// and call os.Exit(1).
func mustMarkRequired(markRequired func(string) error) func(string) {
	return func(s string) {
		if err := markRequired(s); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
}

func Execute() {
	o := &rootOptions{}
	cmd := rootCmd(o)
	cmd.AddCommand(resolveCmd(o))
	cmd.AddCommand(validateEnvCmd(o))
	cmd.AddCommand(voteCmd(o))
	cmd.AddCommand(gotoolchainCmd(o))
	cmd.AddCommand(generateJobsCmd(o))
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
