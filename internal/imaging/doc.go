// Package imaging implements the preprocessor (C1): it turns a raw camera
// frame into a binary edge map ready for contour extraction, and defines
// the neutral Frame type that is the core's boundary with the host's
// native frame representation.
//
// Frame never imports a camera or platform imaging type. Host adapters
// are responsible for producing a Frame from whatever type their camera
// pipeline hands them; everything past the boundary is pure Go plus the
// anthonynsimon/bild primitives the pipeline is built from.
//
// # Coordinate System
//
// Pixel coordinates are 0-based: X increases rightward, Y increases
// downward, origin at the top-left corner, the same convention used by
// every other package in this module (geom, contour, rectify, render).
//
// # Pipeline order
//
// Pipeline.Run applies, in fixed order: grayscale conversion, an
// edge-preserving denoise (median filter, standing in for a bilateral
// filter), Gaussian blur, Sobel-magnitude edge extraction with a
// hand-rolled hysteresis threshold, and morphological dilation. All
// intermediate buffers are owned by the Pipeline and released when Run
// returns; callers receive only the final edge map.
package imaging
