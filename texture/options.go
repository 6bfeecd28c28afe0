// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package texture

import (
	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/texel/gfx"
)

// Options configures a texture resource. The zero value is the
// default configuration: mirrored-repeat wrapping on all axes, no
// flipping, unit scale, mipmaps enabled, no binary copy, smooth
// filtering. Fields are fixed after construction.
type Options struct {

	// WrapS, WrapT and WrapR set the per axis wrap mode.
	// gfx.WrapDefault resolves to gfx.WrapMirroredRepeat.
	WrapS, WrapT, WrapR gfx.WrapMode

	// FlipX and FlipY mark the source as pre-flipped on the given
	// axis. FlipY additionally disables the driver-side vertical
	// flip on upload.
	FlipX, FlipY bool

	// Scale is an advisory UV scale carried with the resource.
	// The zero vector resolves to {1, 1}.
	Scale glm.Vec2

	// DisableMipmaps turns off mipmap generation for power-of-two
	// sources.
	DisableMipmaps bool

	// KeepBinary keeps a CPU readable RGBA copy of uploaded pixels.
	KeepBinary bool

	// Pixelated selects nearest-neighbour sampling and disables
	// mip filtering, for pixel-art style sources.
	Pixelated bool

	// Anisotropy requests 4x anisotropic filtering. Silently
	// skipped when the driver lacks the extension.
	Anisotropy bool

	// OnLoad is invoked with the resource once per completed upload.
	OnLoad func(*Texture)
}

func normalize(opts Options) Options {
	if opts.WrapS == gfx.WrapDefault {
		opts.WrapS = gfx.WrapMirroredRepeat
	}
	if opts.WrapT == gfx.WrapDefault {
		opts.WrapT = gfx.WrapMirroredRepeat
	}
	if opts.WrapR == gfx.WrapDefault {
		opts.WrapR = gfx.WrapMirroredRepeat
	}
	if opts.Scale == (glm.Vec2{}) {
		opts.Scale = glm.Vec2{1, 1}
	}
	return opts
}
