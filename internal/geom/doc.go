// Package geom provides the core 2-D geometry types shared by every stage
// of the detection pipeline: points, quadrilaterals, canonical corner
// ordering, and the shape checks that accept or reject a candidate
// quadrilateral before it is allowed to leave the pipeline.
//
// Every Quad that escapes this package into tracker, rectify, or render
// carries exactly four points in TL, TR, BR, BL order. Nothing downstream
// re-derives that order; geom is where it is established once.
package geom
