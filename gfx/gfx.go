// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gfx defines rendering related features that renderers must implement.
package gfx

// WrapMode selects how sampling behaves outside texture bounds.
type WrapMode int

// Supported wrap modes. WrapDefault is the zero value and is resolved
// to WrapMirroredRepeat by resource configuration.
const (
	WrapDefault WrapMode = iota
	WrapClampToEdge
	WrapRepeat
	WrapMirroredRepeat
)

// Filter selects how texels are sampled when the texture is
// minified or magnified.
type Filter int

// Supported filtering modes.
const (
	FilterNearest Filter = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterLinearMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapLinear
)

// ExtAnisotropic is the driver extension that enables anisotropic filtering.
const ExtAnisotropic = "GL_EXT_texture_filter_anisotropic"

// Releasable defines any memory-occupying item that can be freed.
type Releasable interface {

	// Release releases memory occupied by the implementing structure.
	Release()
}

// Resource describes a rendering resource that can be uniquely identified.
type Resource interface {
	Releasable

	// ID returns a resource id that uniquely identifies it.
	ID() uint64
}

// Texture is an opaque handle to a driver texture object.
type Texture interface {
	Releasable
}

// Context describes the subset of a GPU driver needed to manage 2D
// textures. All texture operations act on the currently bound texture
// object. The binding and the upload flip flag are global driver state,
// callers that change them are expected to restore them.
type Context interface {

	// NewTexture creates an empty texture object.
	NewTexture() (Texture, error)

	// Bound returns the currently bound texture, nil when none is bound.
	Bound() Texture

	// Bind makes tex the active texture object, nil unbinds.
	Bind(tex Texture)

	// TexImage2D uploads a w by h rectangle of RGBA pixels into the
	// bound texture, honouring the upload flip flag.
	TexImage2D(w, h int, pixels []byte)

	// SetWrap sets the wrap mode of the bound texture per axis.
	SetWrap(s, t, r WrapMode)

	// SetMinFilter sets the minification filter of the bound texture.
	SetMinFilter(f Filter)

	// SetMagFilter sets the magnification filter of the bound texture.
	SetMagFilter(f Filter)

	// SetLODBias sets the mip level-of-detail bias of the bound texture.
	SetLODBias(bias float32)

	// SetAnisotropy sets the anisotropic filtering level of the bound
	// texture. Only valid when the driver reports ExtAnisotropic.
	SetAnisotropy(level float32)

	// GenerateMipmaps builds the mip chain for the bound texture.
	GenerateMipmaps()

	// SetFlipY toggles the driver-global vertical flip applied to
	// subsequent uploads.
	SetFlipY(flip bool)

	// FlipY returns the current state of the upload flip flag.
	FlipY() bool
}

// Renderer exposes driver capabilities to resource management.
type Renderer interface {

	// Extension reports whether the driver supports a named extension.
	Extension(name string) bool
}
