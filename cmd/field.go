/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

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
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofoam/readfiles"
	"github.com/notargets/gofoam/utils"
)

// FieldCmd represents the field command
var FieldCmd = &cobra.Command{
	Use:   "field file",
	Short: "Decode the internal field of a field file and print its range",
	Long: `Decode the internalField entry of an OpenFOAM field file, uniform or
nonuniform, and print the number of values with the range of each component.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kind, _ := cmd.Flags().GetString("kind")
		if viper.GetBool("verbose") {
			fmt.Printf("Reading internal field named: %s\n", args[0])
		}
		if err := RunField(args[0], kind, cmd.OutOrStdout()); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func RunField(filename, kind string, w io.Writer) (err error) {
	switch kind {
	case "vector":
		var vals []r3.Vec
		if vals, err = readfiles.ReadInternalField[r3.Vec](filename, readfiles.DecodeVector); err != nil {
			return
		}
		fmt.Fprintf(w, "%s: %d vector values\n", filename, len(vals))
		x, y, z := make([]float64, len(vals)), make([]float64, len(vals)), make([]float64, len(vals))
		for i, v := range vals {
			x[i], y[i], z[i] = v.X, v.Y, v.Z
		}
		for _, comp := range []struct {
			name string
			data []float64
		}{{"x", x}, {"y", y}, {"z", z}} {
			printRange(w, comp.name, comp.data)
		}
		if utils.IsNan(vals) {
			fmt.Fprintf(w, "warning: NaN found in %s\n", filename)
		}
	case "scalar":
		var vals []float64
		if vals, err = readfiles.ReadInternalField[float64](filename, readfiles.DecodeScalar); err != nil {
			return
		}
		fmt.Fprintf(w, "%s: %d scalar values\n", filename, len(vals))
		printRange(w, "value", vals)
		if utils.IsNan(vals) {
			fmt.Fprintf(w, "warning: NaN found in %s\n", filename)
		}
	default:
		err = fmt.Errorf("unknown field kind %q, must be vector or scalar", kind)
	}
	return
}

func printRange(w io.Writer, name string, data []float64) {
	if len(data) == 0 {
		return
	}
	fmt.Fprintf(w, "  %-6s min %g max %g mean %g\n", name, floats.Min(data), floats.Max(data), floats.Sum(data)/float64(len(data)))
}

func init() {
	rootCmd.AddCommand(FieldCmd)
	FieldCmd.Flags().StringP("kind", "k", "vector", "field kind, vector or scalar")
}
