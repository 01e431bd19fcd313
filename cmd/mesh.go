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
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gofoam/InputParameters"
	"github.com/notargets/gofoam/mesh"
	"github.com/notargets/gofoam/utils"
)

type MeshRun struct {
	CaseDir     string
	ICFile      string
	CellCenters string
	Patches     []string
	HeaderLines int
	Verbose     bool
	Fields      map[string]InputParameters.FieldFile
}

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh [caseDir]",
	Short: "Read an OpenFOAM polyMesh and print its statistics",
	Long: `Read the constant/polyMesh files of an OpenFOAM case, build the cell
connectivity and print mesh statistics. Boundary cells of named patches and
the extent of the cell centres can be reported as well.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mr := &MeshRun{
			HeaderLines: viper.GetInt("headerLines"),
			Verbose:     viper.GetBool("verbose"),
		}
		if len(args) == 1 {
			mr.CaseDir = args[0]
		}
		if mr.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		mr.CellCenters, _ = cmd.Flags().GetString("cell-centers")
		mr.Patches, _ = cmd.Flags().GetStringSlice("patch")
		if err = processMeshInput(mr); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err = RunMesh(mr, cmd.OutOrStdout()); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

// processMeshInput merges a case parameter file into mr. Values in the file
// take precedence over the flags, relative paths resolve against the case.
func processMeshInput(mr *MeshRun) (err error) {
	if len(mr.ICFile) != 0 {
		var (
			data []byte
			cp   = &InputParameters.CaseParameters{}
		)
		if data, err = os.ReadFile(mr.ICFile); err != nil {
			return
		}
		if err = cp.Parse(data); err != nil {
			return fmt.Errorf("could not parse %q: %w", mr.ICFile, err)
		}
		if err = cp.Validate(); err != nil {
			return
		}
		if mr.Verbose {
			cp.Print()
		}
		mr.CaseDir = cp.CaseDir
		if cp.HeaderLines != nil {
			mr.HeaderLines = *cp.HeaderLines
		}
		if len(cp.CellCenters) != 0 {
			mr.CellCenters = cp.CellCenters
		}
		mr.Patches = append(mr.Patches, cp.Patches...)
		mr.Fields = cp.Fields
	}
	if len(mr.CaseDir) == 0 {
		exampleFile := `
########################################
Title: "Lid driven cavity"
CaseDir: cavity
HeaderLines: 10
CellCenters: 0/C
Fields:
  U:
    File: 0/U
    Kind: vector
Patches:
  - movingWall
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		return fmt.Errorf("must supply a case directory, either as an argument or in an input parameters file (-I, --inputConditionsFile)")
	}
	return
}

func (mr *MeshRun) casePath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(mr.CaseDir, file)
}

func RunMesh(mr *MeshRun, w io.Writer) (err error) {
	var (
		fm *mesh.FoamMesh
	)
	if fm, err = mesh.ReadFoamMesh(mr.CaseDir, mr.HeaderLines, mr.Verbose); err != nil {
		return
	}
	if mr.Verbose {
		fm.PrintStatistics()
		fmt.Fprintln(w, utils.GetMemUsage())
	}
	fmt.Fprintf(w, "%s: %d points, %d faces (%d internal), %d cells\n",
		fm.Path, fm.NumPoints(), fm.NumFaces(), fm.NumInnerFaces(), fm.NumCells())
	for _, bp := range fm.Boundary.Patches() {
		fmt.Fprintf(w, "  %s\n", bp.String())
	}
	for _, name := range mr.Patches {
		if _, ok := fm.Boundary.Patch(name); !ok {
			return fmt.Errorf("no boundary patch named %q in %s, have %v", name, fm.Path, fm.Boundary.Names())
		}
		cells := fm.BoundaryCells(name)
		fmt.Fprintf(w, "Patch %s: %d boundary cells\n", name, len(cells))
		if mr.Verbose {
			fmt.Fprintf(w, "  %v\n", cells)
		}
	}
	if len(mr.CellCenters) != 0 {
		if err = fm.ReadCellCenters(mr.casePath(mr.CellCenters)); err != nil {
			return
		}
		box := fm.CellCenterBox()
		fmt.Fprintf(w, "Cell centers: %d, bounding box: %v - %v\n", len(fm.CellCenters), box.Min, box.Max)
		if utils.IsNan(fm.CellCenters) {
			fmt.Fprintf(w, "warning: NaN found in cell centers\n")
		}
	}
	for _, name := range sortedFieldNames(mr.Fields) {
		ff := mr.Fields[name]
		var count int
		switch ff.Kind {
		case "vector":
			if err = fm.AttachVectorField(name, mr.casePath(ff.File)); err != nil {
				return
			}
			count = len(fm.VectorFields[name])
		case "scalar":
			if err = fm.AttachScalarField(name, mr.casePath(ff.File)); err != nil {
				return
			}
			count = len(fm.ScalarFields[name])
		default:
			return fmt.Errorf("field %s: unknown kind %q", name, ff.Kind)
		}
		fmt.Fprintf(w, "Field %s (%s): %d values\n", name, ff.Kind, count)
		if count != 1 && count != fm.NumCells() {
			fmt.Fprintf(w, "warning: field %s has %d values for %d cells\n", name, count, fm.NumCells())
		}
	}
	return
}

func sortedFieldNames(fields map[string]InputParameters.FieldFile) []string {
	cp := InputParameters.CaseParameters{Fields: fields}
	return cp.FieldNames()
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for case parameters like:\n\t- CaseDir\n\t- CellCenters\n\t- Fields")
	MeshCmd.Flags().StringP("cell-centers", "C", "", "cell centre file, relative to the case directory, e.g. 0/C")
	MeshCmd.Flags().StringSliceP("patch", "p", nil, "report the boundary cells of this patch, may be repeated")
}
