/*
 * Copyright 2018 Dgraph Labs, Inc. and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command wkt parses Well-Known Text geometries and prints them as GeoJSON,
// optionally with the S2 cell tokens a geospatial index would use.
package main

import (
	goflag "flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/dgraph-io/wkt"
	"github.com/dgraph-io/wkt/geo"
	"github.com/dgraph-io/wkt/x"
)

var rootCmd = &cobra.Command{
	Use:           "wkt",
	Short:         "Well-Known Text geometry tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Parse is the sub-command invoked when running "wkt parse".
var Parse x.SubCommand

func init() {
	Parse.Cmd = &cobra.Command{
		Use:   "parse [wkt...]",
		Short: "Parse WKT input and print GeoJSON",
		Long: `Parse reads Well-Known Text from its arguments, or from stdin when no
arguments are given, and prints each geometry as GeoJSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args)
		},
	}
	Parse.EnvPrefix = "WKT_PARSE"

	flag := Parse.Cmd.Flags()
	flag.Bool("ewkt", false, "Accept PostGIS EWKT (SRID prefix, fused M tag suffix)")
	flag.Bool("wkt12", false, "Accept SFS 1.2 dimension tokens (Z, M, ZM)")
	flag.Bool("strict", false, "Strict WKT 1.1: undeclared dimensions are an error")
	flag.Bool("ignore-extra", false, "Ignore trailing tokens after a valid geometry")
	flag.Int("srid", 0, "SRID to stamp on geometries without an EWKT prefix")
	flag.Bool("cells", false, "Also print S2 index cell tokens (2D points and polygons)")

	rootCmd.AddCommand(Parse.Cmd)
	Parse.Conf = viper.New()
	x.Check(Parse.Conf.BindPFlags(Parse.Cmd.Flags()))
	Parse.Conf.AutomaticEnv()
	Parse.Conf.SetEnvPrefix(Parse.EnvPrefix)

	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
}

func run(args []string) error {
	conf := Parse.Conf
	parser := wkt.NewParser(wkt.Config{
		SupportEWKT:       conf.GetBool("ewkt"),
		SupportWKT12:      conf.GetBool("wkt12"),
		StrictWKT11:       conf.GetBool("strict"),
		IgnoreExtraTokens: conf.GetBool("ignore-extra"),
		FactoryGenerator: func(req wkt.FactoryRequest) wkt.Factory {
			f := wkt.NewGeomFactory()
			f.SRID = conf.GetInt("srid")
			if req.HasSRID {
				f.SRID = req.SRID
			}
			return f
		},
	})
	glog.V(2).Infof("parser config: %+v", parser.Config)

	inputs := args
	if len(inputs) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return x.Wrapf(err, "reading stdin")
		}
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				inputs = append(inputs, line)
			}
		}
	}

	for _, in := range inputs {
		if err := parseOne(parser, in, conf.GetBool("cells")); err != nil {
			return err
		}
	}
	return nil
}

func parseOne(parser *wkt.Parser, input string, cells bool) error {
	g, err := parser.Parse(input)
	if err != nil {
		return x.Wrapf(err, "parsing %q", input)
	}
	t, ok := g.(geom.T)
	if !ok {
		return x.Errorf("factory produced %T, which is not a geom.T", g)
	}
	out, err := geojson.Marshal(t)
	if err != nil {
		return x.Wrapf(err, "encoding %q", input)
	}
	fmt.Printf("%s\n", out)

	if cells {
		toks, err := geo.Tokens(t)
		if err != nil {
			glog.Warningf("no cell tokens for %q: %v", input, err)
			return nil
		}
		fmt.Println(strings.Join(toks, " "))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
