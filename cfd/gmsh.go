package cfd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"honnef.co/go/airfoil"
)

const (
	GeoFile  = "airfoilMesh.geo"
	MeshFile = "airfoilMesh.su2"
)

// Physical group names shared by the mesh and the solver configuration.
const (
	AirfoilMarker  = "airfoil"
	FarfieldMarker = "farfield"
)

// Mesher turns a closed airfoil outline into a mesh file inside dir and
// returns the mesh file's path.
type Mesher interface {
	Mesh(ctx context.Context, dir string, outline []airfoil.Point) (string, error)
}

// Gmsh meshes the region between the airfoil and a circular far field with
// gmsh. Zero fields take the defaults noted on each field.
type Gmsh struct {
	// Exe is the gmsh executable. Default "gmsh".
	Exe string
	// Elements is the number of mesh elements along the airfoil. Default 1000.
	Elements int
	// FarfieldRadius is the far-field radius in chords. Default 20.
	FarfieldRadius float64
	// Scale multiplies all coordinates. Default 1.
	Scale float64
	// Runner starts gmsh. Default ExecRunner.
	Runner Runner
}

func (g Gmsh) withDefaults() Gmsh {
	if g.Exe == "" {
		g.Exe = "gmsh"
	}
	if g.Elements <= 0 {
		g.Elements = 1000
	}
	if g.FarfieldRadius <= 0 {
		g.FarfieldRadius = 20
	}
	if g.Scale == 0 {
		g.Scale = 1
	}
	if g.Runner == nil {
		g.Runner = ExecRunner{}
	}
	return g
}

// WriteGeo writes a gmsh geometry script for outline. A trailing point equal
// to the first one is dropped and the airfoil curve closes on itself;
// otherwise a straight segment closes the blunt trailing edge.
func (g Gmsh) WriteGeo(w io.Writer, outline []airfoil.Point) error {
	g = g.withDefaults()
	pts := outline
	sharp := len(pts) > 1 && pts[0] == pts[len(pts)-1]
	if sharp {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return fmt.Errorf("gmsh: need at least 3 distinct outline points, got %d", len(pts))
	}

	var perimeter float64
	for i := range pts {
		perimeter += pts[i].Distance(pts[(i+1)%len(pts)])
	}
	s, r := g.Scale, g.FarfieldRadius*g.Scale
	lc := perimeter * s / float64(g.Elements)
	lcFar := max(lc, r/10)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// airfoil mesh, %d outline points\n", len(pts))
	fmt.Fprintf(bw, "lc = %g;\nlcFar = %g;\n", lc, lcFar)
	for i, p := range pts {
		fmt.Fprintf(bw, "Point(%d) = {%.10g, %.10g, 0, lc};\n", i+1, p.X*s, p.Y*s)
	}

	ids := make([]string, len(pts))
	for i := range pts {
		ids[i] = fmt.Sprint(i + 1)
	}
	n := len(pts)
	loop := "1"
	if sharp {
		fmt.Fprintf(bw, "Spline(1) = {%s, 1};\n", strings.Join(ids, ", "))
	} else {
		fmt.Fprintf(bw, "Spline(1) = {%s};\n", strings.Join(ids, ", "))
		fmt.Fprintf(bw, "Line(2) = {%d, 1};\n", n)
		loop = "1, 2"
	}

	c := n + 1
	cx := 0.5 * s
	fmt.Fprintf(bw, "Point(%d) = {%.10g, 0, 0, lcFar};\n", c, cx)
	fmt.Fprintf(bw, "Point(%d) = {%.10g, 0, 0, lcFar};\n", c+1, cx+r)
	fmt.Fprintf(bw, "Point(%d) = {%.10g, %.10g, 0, lcFar};\n", c+2, cx, r)
	fmt.Fprintf(bw, "Point(%d) = {%.10g, 0, 0, lcFar};\n", c+3, cx-r)
	fmt.Fprintf(bw, "Point(%d) = {%.10g, %.10g, 0, lcFar};\n", c+4, cx, -r)
	for i := 0; i < 4; i++ {
		from, to := c+1+i, c+1+(i+1)%4
		fmt.Fprintf(bw, "Circle(%d) = {%d, %d, %d};\n", 10+i, from, c, to)
	}
	fmt.Fprintf(bw, "Curve Loop(1) = {%s};\n", loop)
	fmt.Fprintf(bw, "Curve Loop(2) = {10, 11, 12, 13};\n")
	fmt.Fprintf(bw, "Plane Surface(1) = {2, 1};\n")
	fmt.Fprintf(bw, "Physical Curve(%q) = {%s};\n", AirfoilMarker, loop)
	fmt.Fprintf(bw, "Physical Curve(%q) = {10, 11, 12, 13};\n", FarfieldMarker)
	fmt.Fprintf(bw, "Physical Surface(\"fluid\") = {1};\n")
	return bw.Flush()
}

func (g Gmsh) Mesh(ctx context.Context, dir string, outline []airfoil.Point) (string, error) {
	g = g.withDefaults()
	geoPath := filepath.Join(dir, GeoFile)
	f, err := os.Create(geoPath)
	if err != nil {
		return "", &OpError{Op: "write geo", Kind: KindIO, Path: geoPath, Err: err}
	}
	err = g.WriteGeo(f, outline)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", &OpError{Op: "write geo", Kind: KindIO, Path: geoPath, Err: err}
	}

	if err := g.Runner.Run(ctx, dir, g.Exe, GeoFile, "-2", "-format", "su2", "-o", MeshFile); err != nil {
		return "", err
	}
	return filepath.Join(dir, MeshFile), nil
}
