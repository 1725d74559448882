// Package contour extracts ordered boundary polygons from a binary edge
// map: connected-component labeling and Moore-neighbor boundary tracing,
// Douglas-Peucker polyline simplification, a rotating-calipers
// minimum-area rectangle fit, and a probabilistic Hough line transform.
// These are the low-level primitives behind the quad extractor's three
// strategies (internal/quad); nothing here knows about documents,
// quadrilaterals being "valid", or the pipeline that produced the edge
// map it is handed.
package contour
