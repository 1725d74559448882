// Package rectify implements the rectifier (C5): it computes a 3x3
// projective transform from a source quadrilateral to an axis-aligned
// destination rectangle and warps the source frame through it with
// bilinear interpolation.
package rectify
