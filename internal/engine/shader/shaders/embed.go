// Package shaders provides embedded GLSL shader sources.
package shaders

import "embed"

// FS holds every shader source, looked up by file name.
//
//go:embed *.vert *.frag
var FS embed.FS

// Shader file names.
const (
	// FlatVertex and FlatFragment draw geometry in a single uniform colour.
	FlatVertex   = "flat.vert"
	FlatFragment = "flat.frag"

	// ColourVertex and ColourFragment interpolate per-vertex colours.
	ColourVertex   = "colour.vert"
	ColourFragment = "colour.frag"

	// LitVertex and LitFragment apply a texture with ambient plus diffuse
	// lighting from one directional light.
	LitVertex   = "lit.vert"
	LitFragment = "lit.frag"
)
