// Package glsllib holds the GLSL function definitions shared by every
// generated fragment shader. The functions expect a `minDim` float constant
// declared before them.
package glsllib

import (
	_ "embed"
)

//go:embed smin.glsl
var sminSrc []byte

// SmoothMin is the polynomial smooth minimum used to blob shapes together:
//
//	float smin(float a, float b, float k)
func SmoothMin() []byte { return sminSrc }

//go:embed rectangle.glsl
var rectangleSrc []byte

// Rectangle is the SDF of an axis aligned rounded rectangle. position and halfSize
// are in canvas pixels, radius is a fraction of the smallest half side:
//
//	float rectangle(vec2 samplePosition, vec2 position, vec2 halfSize, float radius)
func Rectangle() []byte { return rectangleSrc }

//go:embed circle.glsl
var circleSrc []byte

// Circle is the SDF of a circle with position and radius in canvas pixels:
//
//	float circle(vec2 samplePosition, vec2 position, float radius)
func Circle() []byte { return circleSrc }
