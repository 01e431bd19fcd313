package cmd

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofoam/readfiles"
	"github.com/notargets/gofoam/testcases"
)

func writeCavity(t *testing.T) (caseDir string) {
	t.Helper()
	caseDir = t.TempDir()
	require.NoError(t, testcases.StandardCavity().Write(caseDir))
	return
}

func TestRunMesh(t *testing.T) {
	caseDir := writeCavity(t)
	mr := &MeshRun{
		CaseDir:     caseDir,
		HeaderLines: readfiles.DefaultHeaderLines,
		CellCenters: "0.5/C",
		Patches:     []string{"movingWall", "fixedWalls"},
	}
	var out bytes.Buffer
	require.NoError(t, RunMesh(mr, &out))
	report := out.String()
	assert.Contains(t, report, "5043 points, 11360 faces (7840 internal), 3200 cells")
	assert.Contains(t, report, "frontAndBack")
	assert.Contains(t, report, "Patch movingWall: 80 boundary cells")
	assert.Contains(t, report, "Patch fixedWalls: 240 boundary cells")
	assert.Contains(t, report, "Cell centers: 3200")
	assert.NotContains(t, report, "warning")

	mr.Patches = []string{"inlet"}
	err := RunMesh(mr, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inlet")

	mr.Patches = nil
	mr.CellCenters = "0.5/missing"
	err = RunMesh(mr, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestProcessMeshInput(t *testing.T) {
	var (
		err error
	)
	caseDir := writeCavity(t)
	fileInput := []byte(`
Title: Lid driven cavity
CaseDir: ` + caseDir + `
CellCenters: 0.5/C
Fields:
  U:
    File: 0/U
    Kind: vector
  p:
    File: 0.5/p
    Kind: scalar
Patches:
  - movingWall
`)
	icFile := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, os.WriteFile(icFile, fileInput, 0644))

	mr := &MeshRun{ICFile: icFile, HeaderLines: readfiles.DefaultHeaderLines}
	require.NoError(t, processMeshInput(mr))
	assert.Equal(t, caseDir, mr.CaseDir)
	assert.Equal(t, "0.5/C", mr.CellCenters)
	assert.Equal(t, []string{"movingWall"}, mr.Patches)
	assert.Equal(t, readfiles.DefaultHeaderLines, mr.HeaderLines)
	require.Len(t, mr.Fields, 2)

	var out bytes.Buffer
	require.NoError(t, RunMesh(mr, &out))
	report := out.String()
	// Uniform fields carry a single value, p carries one per cell
	assert.Contains(t, report, "Field U (vector): 1 values")
	assert.Contains(t, report, "Field p (scalar): 3200 values")
	assert.NotContains(t, report, "warning")

	// No case directory from either source
	err = processMeshInput(&MeshRun{})
	assert.Error(t, err)

	badFile := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badFile, []byte("Fields: {U: {File: 0/U, Kind: tensor}}\nCaseDir: x\n"), 0644))
	err = processMeshInput(&MeshRun{ICFile: badFile})
	assert.Error(t, err)
}

func TestRunField(t *testing.T) {
	caseDir := writeCavity(t)
	var out bytes.Buffer
	require.NoError(t, RunField(filepath.Join(caseDir, "0.5", "C"), "vector", &out))
	report := out.String()
	assert.Contains(t, report, "3200 vector values")
	assert.Contains(t, report, "min 0.00125 max 0.09875")

	out.Reset()
	require.NoError(t, RunField(filepath.Join(caseDir, "0.5", "p"), "scalar", &out))
	assert.Contains(t, out.String(), "3200 scalar values")
	assert.Contains(t, out.String(), "min 0.0025 max 0.1975")

	out.Reset()
	require.NoError(t, RunField(filepath.Join(caseDir, "0", "U"), "vector", &out))
	assert.Contains(t, out.String(), "1 vector values")

	assert.Error(t, RunField(filepath.Join(caseDir, "0", "U"), "tensor", &out))
	// A vector file read as scalars does not decode
	assert.Error(t, RunField(filepath.Join(caseDir, "0.5", "C"), "scalar", &out))
}
