package airfoil_test

import (
	"fmt"
	"os"

	"honnef.co/go/airfoil"
)

func ExampleBuild() {
	g, err := airfoil.Build(airfoil.DefaultParams(), 101)
	if err != nil {
		panic(err)
	}
	b := g.Boundary()
	fmt.Println(g.Len(), len(b))
	fmt.Println(g.LeadingEdge(), b[0], b[len(b)-1])
	// Output:
	// 101 201
	// (0, 0) (1, 0) (1, 0)
}

func ExampleBuild_invalid() {
	p := airfoil.DefaultParams().With("x_t", 1.2)
	g, err := airfoil.Build(p, 50)
	fmt.Println(g.Valid())
	fmt.Println(err)
	// Output:
	// false
	// invalid geometry: x_t = 1.2, want in (0, 1)
}

func ExampleGeometry_SurfaceY() {
	g, _ := airfoil.Build(airfoil.DefaultParams(), 50)
	_, err := g.SurfaceY(airfoil.Top, 1.5)
	fmt.Println(err)
	// Output:
	// chordwise station out of domain: x = 1.5
}

func ExampleParams_WriteTo() {
	airfoil.DefaultParams().WriteTo(os.Stdout)
	// Output:
	// r_le=-0.05
	// beta_te=0.1
	// dz_te=0
	// x_t=0.3
	// y_t=0.1
	// gamma_le=0.5
	// x_c=0.5
	// y_c=0.1
	// alpha_te=-0.1
	// z_te=0
	// b_0=0.1
	// b_2=0.25
	// b_8=0.05
	// b_15=0.75
	// b_17=0.9
}
