// Package render draws the live scanning overlay: a stroked polygon
// with a translucent fill over the detected quadrilateral, and the
// downscaled preview bitmap that ships alongside each detection event.
// Color blending is done in Lab space via go-colorful rather than a
// naive sRGB lerp, so the translucent fill reads as a uniform tint
// instead of washing out against bright backgrounds.
package render
