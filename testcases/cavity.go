// Package testcases writes small, fully known OpenFOAM case directories for
// tests of the readers and the mesh.
package testcases

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cavity is a structured NX x NY x NZ hex block spanning [0,Lx]x[0,Ly]x[0,Lz],
// laid out the way blockMesh writes the lid driven cavity tutorial
type Cavity struct {
	NX, NY, NZ int
	Lx, Ly, Lz float64
}

// Patch describes one boundary patch of the generated case
type Patch struct {
	Name      string
	Type      string
	StartFace int
	NumFaces  int
}

// StandardCavity is the tutorial case: 5043 points, 11360 faces, 3200 cells
func StandardCavity() Cavity {
	return Cavity{NX: 40, NY: 40, NZ: 2, Lx: 0.1, Ly: 0.1, Lz: 0.01}
}

func (c Cavity) NumPoints() int { return (c.NX + 1) * (c.NY + 1) * (c.NZ + 1) }
func (c Cavity) NumCells() int  { return c.NX * c.NY * c.NZ }

func (c Cavity) NumInternalFaces() int {
	return (c.NX-1)*c.NY*c.NZ + c.NX*(c.NY-1)*c.NZ + c.NX*c.NY*(c.NZ-1)
}

func (c Cavity) NumFaces() int {
	return c.NumInternalFaces() + 2*(c.NX*c.NY+c.NY*c.NZ+c.NX*c.NZ)
}

func (c Cavity) PointID(i, j, k int) int {
	return i + (c.NX+1)*j + (c.NX+1)*(c.NY+1)*k
}

func (c Cavity) CellID(i, j, k int) int {
	return i + c.NX*j + c.NX*c.NY*k
}

func (c Cavity) Point(i, j, k int) r3.Vec {
	return r3.Vec{
		X: float64(i) * c.Lx / float64(c.NX),
		Y: float64(j) * c.Ly / float64(c.NY),
		Z: float64(k) * c.Lz / float64(c.NZ),
	}
}

// CellCenter of cell id, as written by writeCellCentres
func (c Cavity) CellCenter(cellID int) r3.Vec {
	i := cellID % c.NX
	j := (cellID / c.NX) % c.NY
	k := cellID / (c.NX * c.NY)
	return r3.Vec{
		X: (float64(i) + 0.5) * c.Lx / float64(c.NX),
		Y: (float64(j) + 0.5) * c.Ly / float64(c.NY),
		Z: (float64(k) + 0.5) * c.Lz / float64(c.NZ),
	}
}

// Topology returns the polyMesh face list in solver order: internal faces in
// upper triangular order, then the boundary faces patch by patch
func (c Cavity) Topology() (faces [][]int, owners, neighbours []int, patches []Patch) {
	var (
		p = c.PointID
	)
	for k := 0; k < c.NZ; k++ {
		for j := 0; j < c.NY; j++ {
			for i := 0; i < c.NX; i++ {
				cell := c.CellID(i, j, k)
				if i < c.NX-1 {
					faces = append(faces, []int{p(i+1, j, k), p(i+1, j+1, k), p(i+1, j+1, k+1), p(i+1, j, k+1)})
					owners, neighbours = append(owners, cell), append(neighbours, cell+1)
				}
				if j < c.NY-1 {
					faces = append(faces, []int{p(i, j+1, k), p(i, j+1, k+1), p(i+1, j+1, k+1), p(i+1, j+1, k)})
					owners, neighbours = append(owners, cell), append(neighbours, cell+c.NX)
				}
				if k < c.NZ-1 {
					faces = append(faces, []int{p(i, j, k+1), p(i+1, j, k+1), p(i+1, j+1, k+1), p(i, j+1, k+1)})
					owners, neighbours = append(owners, cell), append(neighbours, cell+c.NX*c.NY)
				}
			}
		}
	}
	addPatch := func(name, typeTag string, add func()) {
		start := len(faces)
		add()
		patches = append(patches, Patch{Name: name, Type: typeTag, StartFace: start, NumFaces: len(faces) - start})
	}
	addPatch("movingWall", "wall", func() {
		for k := 0; k < c.NZ; k++ {
			for i := 0; i < c.NX; i++ {
				J := c.NY
				faces = append(faces, []int{p(i, J, k), p(i, J, k+1), p(i+1, J, k+1), p(i+1, J, k)})
				owners = append(owners, c.CellID(i, c.NY-1, k))
			}
		}
	})
	addPatch("fixedWalls", "wall", func() {
		for k := 0; k < c.NZ; k++ {
			for j := 0; j < c.NY; j++ {
				faces = append(faces, []int{p(0, j, k), p(0, j, k+1), p(0, j+1, k+1), p(0, j+1, k)})
				owners = append(owners, c.CellID(0, j, k))
			}
		}
		for k := 0; k < c.NZ; k++ {
			for j := 0; j < c.NY; j++ {
				I := c.NX
				faces = append(faces, []int{p(I, j, k), p(I, j+1, k), p(I, j+1, k+1), p(I, j, k+1)})
				owners = append(owners, c.CellID(c.NX-1, j, k))
			}
		}
		for k := 0; k < c.NZ; k++ {
			for i := 0; i < c.NX; i++ {
				faces = append(faces, []int{p(i, 0, k), p(i+1, 0, k), p(i+1, 0, k+1), p(i, 0, k+1)})
				owners = append(owners, c.CellID(i, 0, k))
			}
		}
	})
	addPatch("frontAndBack", "empty", func() {
		for j := 0; j < c.NY; j++ {
			for i := 0; i < c.NX; i++ {
				faces = append(faces, []int{p(i, j, 0), p(i, j+1, 0), p(i+1, j+1, 0), p(i+1, j, 0)})
				owners = append(owners, c.CellID(i, j, 0))
			}
		}
		for j := 0; j < c.NY; j++ {
			for i := 0; i < c.NX; i++ {
				K := c.NZ
				faces = append(faces, []int{p(i, j, K), p(i+1, j, K), p(i+1, j+1, K), p(i, j+1, K)})
				owners = append(owners, c.CellID(i, j, c.NZ-1))
			}
		}
	})
	return
}

// Header writes the banner and FoamFile dictionary. The first
// readfiles.DefaultHeaderLines lines end inside the dictionary.
func Header(class, location, object string) string {
	var sb strings.Builder
	sb.WriteString(`/*--------------------------------*- C++ -*----------------------------------*\
  =========                 |
  \\      /  F ield         | OpenFOAM: The Open Source CFD Toolbox
   \\    /   O peration     | Website:  https://openfoam.org
    \\  /    A nd           | Version:  7
     \\/     M anipulation  |
\*---------------------------------------------------------------------------*/
FoamFile
{
    version     2.0;
    format      ascii;
`)
	fmt.Fprintf(&sb, "    class       %s;\n", class)
	fmt.Fprintf(&sb, "    location    \"%s\";\n", location)
	fmt.Fprintf(&sb, "    object      %s;\n", object)
	sb.WriteString("}\n")
	sb.WriteString("// * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * //\n\n")
	return sb.String()
}

const footer = "\n\n// ************************************************************************* //\n"

func num(f float64) string {
	return fmt.Sprintf("%.10g", f)
}

func vec(v r3.Vec) string {
	return "(" + num(v.X) + " " + num(v.Y) + " " + num(v.Z) + ")"
}

func (c Cavity) PointsFile() string {
	var sb strings.Builder
	sb.WriteString(Header("vectorField", "constant/polyMesh", "points"))
	fmt.Fprintf(&sb, "\n%d\n(\n", c.NumPoints())
	for k := 0; k <= c.NZ; k++ {
		for j := 0; j <= c.NY; j++ {
			for i := 0; i <= c.NX; i++ {
				sb.WriteString(vec(c.Point(i, j, k)))
				sb.WriteByte('\n')
			}
		}
	}
	sb.WriteString(")" + footer)
	return sb.String()
}

func (c Cavity) FacesFile() string {
	var sb strings.Builder
	faces, _, _, _ := c.Topology()
	sb.WriteString(Header("faceList", "constant/polyMesh", "faces"))
	fmt.Fprintf(&sb, "\n%d\n(\n", len(faces))
	for _, f := range faces {
		strs := make([]string, len(f))
		for i, v := range f {
			strs[i] = fmt.Sprint(v)
		}
		fmt.Fprintf(&sb, "%d(%s)\n", len(f), strings.Join(strs, " "))
	}
	sb.WriteString(")" + footer)
	return sb.String()
}

func (c Cavity) labelFile(object string, labels []int) string {
	var sb strings.Builder
	sb.WriteString(Header("labelList", "constant/polyMesh", object))
	fmt.Fprintf(&sb, "    note        \"nPoints:%d nCells:%d nFaces:%d nInternalFaces:%d\";\n",
		c.NumPoints(), c.NumCells(), c.NumFaces(), c.NumInternalFaces())
	fmt.Fprintf(&sb, "\n%d\n(\n", len(labels))
	for _, l := range labels {
		fmt.Fprintf(&sb, "%d\n", l)
	}
	sb.WriteString(")" + footer)
	return sb.String()
}

func (c Cavity) OwnerFile() string {
	_, owners, _, _ := c.Topology()
	return c.labelFile("owner", owners)
}

func (c Cavity) NeighbourFile() string {
	_, _, neighbours, _ := c.Topology()
	return c.labelFile("neighbour", neighbours)
}

func (c Cavity) BoundaryFile() string {
	var sb strings.Builder
	_, _, _, patches := c.Topology()
	sb.WriteString(Header("polyBoundaryMesh", "constant/polyMesh", "boundary"))
	fmt.Fprintf(&sb, "\n%d\n(\n", len(patches))
	for _, p := range patches {
		fmt.Fprintf(&sb, "    %s\n    {\n", p.Name)
		fmt.Fprintf(&sb, "        type            %s;\n", p.Type)
		fmt.Fprintf(&sb, "        inGroups        List<word> 1(%s);\n", p.Type)
		fmt.Fprintf(&sb, "        nFaces          %d;\n", p.NumFaces)
		fmt.Fprintf(&sb, "        startFace       %d;\n", p.StartFace)
		sb.WriteString("    }\n")
	}
	sb.WriteString(")" + footer)
	return sb.String()
}

// CellCentersFile is the volVectorField C written by writeCellCentres, with
// a non-uniform internal field and a non-uniform value on movingWall
func (c Cavity) CellCentersFile(location string) string {
	var sb strings.Builder
	sb.WriteString(Header("volVectorField", location, "C"))
	sb.WriteString("dimensions      [0 1 0 0 0 0 0];\n\n")
	sb.WriteString("internalField   nonuniform List<vector> \n")
	fmt.Fprintf(&sb, "%d\n(\n", c.NumCells())
	for cell := 0; cell < c.NumCells(); cell++ {
		sb.WriteString(vec(c.CellCenter(cell)))
		sb.WriteByte('\n')
	}
	sb.WriteString(")\n;\n\nboundaryField\n{\n")
	sb.WriteString("    movingWall\n    {\n        type            calculated;\n")
	sb.WriteString("        value           nonuniform List<vector> \n")
	fmt.Fprintf(&sb, "%d\n(\n", c.NX*c.NZ)
	for k := 0; k < c.NZ; k++ {
		for i := 0; i < c.NX; i++ {
			center := c.CellCenter(c.CellID(i, c.NY-1, k))
			center.Y = c.Ly
			sb.WriteString(vec(center))
			sb.WriteByte('\n')
		}
	}
	sb.WriteString(")\n;\n    }\n")
	sb.WriteString("    fixedWalls\n    {\n        type            calculated;\n        value           uniform (0 0 0);\n    }\n")
	sb.WriteString("    frontAndBack\n    {\n        type            empty;\n    }\n}")
	sb.WriteString(footer)
	return sb.String()
}

// PressureFile is a volScalarField with p = x + y in every cell
func (c Cavity) PressureFile(location string) string {
	var sb strings.Builder
	sb.WriteString(Header("volScalarField", location, "p"))
	sb.WriteString("dimensions      [0 2 -2 0 0 0 0];\n\n")
	sb.WriteString("internalField   nonuniform List<scalar> \n")
	fmt.Fprintf(&sb, "%d\n(\n", c.NumCells())
	for cell := 0; cell < c.NumCells(); cell++ {
		center := c.CellCenter(cell)
		sb.WriteString(num(center.X + center.Y))
		sb.WriteByte('\n')
	}
	sb.WriteString(")\n;\n\nboundaryField\n{\n    frontAndBack\n    {\n        type            empty;\n    }\n}")
	sb.WriteString(footer)
	return sb.String()
}

// UniformFile writes a field whose internal field is "uniform value"
func UniformFile(class, location, object, value string) string {
	var sb strings.Builder
	sb.WriteString(Header(class, location, object))
	sb.WriteString("dimensions      [0 1 -1 0 0 0 0];\n\n")
	fmt.Fprintf(&sb, "internalField   uniform %s;\n\n", value)
	sb.WriteString("boundaryField\n{\n    movingWall\n    {\n        type            fixedValue;\n")
	fmt.Fprintf(&sb, "        value           uniform %s;\n    }\n}", value)
	sb.WriteString(footer)
	return sb.String()
}

// Write lays the case out under caseDir:
//
//	constant/polyMesh/{points,faces,owner,neighbour,boundary}
//	0/U, 0/p          uniform fields
//	0.5/C, 0.5/p      non-uniform fields
func (c Cavity) Write(caseDir string) (err error) {
	files := map[string]string{
		"constant/polyMesh/points":    c.PointsFile(),
		"constant/polyMesh/faces":     c.FacesFile(),
		"constant/polyMesh/owner":     c.OwnerFile(),
		"constant/polyMesh/neighbour": c.NeighbourFile(),
		"constant/polyMesh/boundary":  c.BoundaryFile(),
		"0/U":                         UniformFile("volVectorField", "0", "U", "(0 0 0)"),
		"0/p":                         UniformFile("volScalarField", "0", "p", "0"),
		"0.5/C":                       c.CellCentersFile("0.5"),
		"0.5/p":                       c.PressureFile("0.5"),
	}
	for rel, content := range files {
		path := filepath.Join(caseDir, filepath.FromSlash(rel))
		if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return
		}
		if err = os.WriteFile(path, []byte(content), 0644); err != nil {
			return
		}
	}
	return
}
