// Package airfoil builds two-dimensional airfoil shapes from Bézier-PARSEC
// parameters and fits them around a rectangular cabin.
//
// # Parameterization
//
// An airfoil is described by [Params]: fifteen numbers giving the nose radius,
// the position and size of the maximum thickness and camber, the trailing-edge
// angles and offsets, and five blending factors. [NewBezierParsec] turns them
// into two composite curves, the camber line and the half-thickness
// distribution, each made of a leading-edge and a trailing-edge cubic Bézier
// segment (the BP 3333 variant). Both segments of a curve meet at the
// extremum with a horizontal tangent.
//
// # Geometry
//
// [Build] samples both curves at a shared set of cosine-spaced chordwise
// stations and combines them into a top and a bottom surface. Thickness is
// applied perpendicular to the chord, scaled by the cosine of the camber
// slope. The resulting [Geometry] can be queried with [Geometry.SurfaceY],
// turned into a closed outline with [Geometry.Boundary] and rotated about its
// leading edge with [Geometry.Rotate].
//
// Not every parameter set describes a real airfoil. Build still returns a
// geometry in that case, together with an [*InvalidGeometryError] that
// matches [ErrInvalidGeometry]. Callers decide whether a best-effort shape is
// useful to them.
//
// # Cabin fitting
//
// [FitCabin] adjusts the maximum thickness until the vertical clearance over
// a chordwise span equals a target height. See [Config] for the cabin
// description and the numerical settings.
//
// # Curves
//
// The package carries the small amount of Bézier machinery it needs: points,
// vectors and affine transformations ([Point], [Vec2], [Affine]), quadratic
// and cubic segments ([QuadBez], [CubicBez]) and a bracketing root finder
// ([SolveITP]) used to invert x(t).
package airfoil
