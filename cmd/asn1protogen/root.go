// Copyright 2020-present Open Networking Foundation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main is the thin command-line driver around the translate
// core: it owns flag parsing and output file handling, none of which
// the core itself is specified to do (spec section 1's "out of scope"
// list).
package main

import (
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/onosproject/asn1protogen/emit"
	"github.com/onosproject/asn1protogen/genutil"
	"github.com/onosproject/asn1protogen/lower"
	"github.com/onosproject/asn1protogen/translate"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "asn1protogen [module json files]",
		Short: "asn1protogen lowers a parsed ASN.1 module into proto3 source with validate.v1.rules annotations",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runGenerate,
	}

	root.Flags().String("output_dir", "", "Directory to write generated .proto files to; empty writes to stdout.")
	root.Flags().Bool("strict_string_length_bounds", false, "Flag strict string-length bounds instead of silently widening them to inclusive min_len/max_len.")
	root.Flags().Bool("escape_string_quotes", false, "Backslash-escape embedded quotes in STRING values instead of doubling them.")
	root.PersistentFlags().String("config_file", "", "Path to a config file.")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config_file")
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config: %w", err)
			}
		}
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		viper.AutomaticEnv()
		return nil
	}

	return root
}

// runGenerate is the CLI entry point. Parsing ASN.1 source into the
// asn1tree.Expr forest the core consumes is the job of an out-of-scope
// parser collaborator (spec section 1); this driver wires whatever that
// collaborator hands back through translate.Generate and translate.Emit.
func runGenerate(cmd *cobra.Command, args []string) error {
	opts := translate.Options{
		ToolName:    "asn1protogen",
		ToolVersion: "0.1.0",
		Lower: lower.Options{
			StrictStringLengthBounds:       viper.GetBool("strict_string_length_bounds"),
			EscapeStringQuotesWithBackslash: viper.GetBool("escape_string_quotes"),
		},
	}

	outputDir := viper.GetString("output_dir")

	for _, path := range args {
		mod, err := loadModule(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		protoMod, errs, err := translate.Generate(mod, opts)
		for _, e := range errs {
			log.Warningf("%s: %v", path, e)
		}
		if err != nil {
			return err
		}

		sink, closeSink, err := openSink(outputDir, mod.Name)
		if err != nil {
			return err
		}
		if err := translate.Emit(protoMod, sink, opts); err != nil {
			closeSink()
			return fmt.Errorf("%s: %w", path, err)
		}
		closeSink()
	}
	return nil
}

// openSink returns the stdout sink when outputDir is empty, otherwise
// an *os.File sink for "<outputDir>/<name>.proto" opened via
// genutil.OpenFile, with a matching genutil.SyncFile closer.
func openSink(outputDir, name string) (emit.Sink, func(), error) {
	if outputDir == "" {
		return emit.StdoutSink(), func() {}, nil
	}
	fh := genutil.OpenFile(fmt.Sprintf("%s/%s.proto", outputDir, name))
	return fh, func() { genutil.SyncFile(fh) }, nil
}
