// Package quad implements the quad extractor (C2): it turns an edge map
// into a single best 4-point candidate by trying three strategies in
// strict order (polygon approximation of the largest contour, a
// minimum-area rotated rectangle fallback, and Hough-line intersection),
// handing each strategy's raw candidate to the geometry validator before
// moving on. The first validated candidate wins; if none validates,
// Extract reports "no candidate", which is not an error.
package quad
