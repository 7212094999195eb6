// Package cfd drives the external tools that turn an airfoil outline into
// aerodynamic coefficients: gmsh for the two-dimensional mesh and SU2 for the
// flow solution.
//
// Both tools are reached through small interfaces ([Mesher], [Solver]) so
// that the design loop can run against fakes in tests. The adapters write
// their input files into a per-run directory, start the tool through a
// [Runner] and parse the files it leaves behind.
package cfd
