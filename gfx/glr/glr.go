// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package glr implements the gfx rendering interfaces over OpenGL.
package glr

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/devblok/texel/gfx"
)

// Core profile headers do not carry the EXT enum.
const glTextureMaxAnisotropy = 0x84FE

// NewContext initialises OpenGL bindings and creates a Context over
// the calling thread's current GL context. A window and context must
// exist beforehand.
func NewContext() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init(): %s", err)
	}
	return &Context{flipY: true}, nil
}

// Context is the OpenGL implementation of gfx.Context. Not safe for
// concurrent use, OpenGL itself is bound to one thread.
type Context struct {
	bound *Texture
	flipY bool
}

// Texture wraps an OpenGL texture object name.
type Texture struct {
	name uint32
}

// Release implements gfx.Releasable.
func (t *Texture) Release() {
	gl.DeleteTextures(1, &t.name)
}

// NewTexture implements gfx.Context.
func (c *Context) NewTexture() (gfx.Texture, error) {
	t := &Texture{}
	gl.GenTextures(1, &t.name)
	if t.name == 0 {
		return nil, errors.New("texture object creation failed")
	}
	return t, nil
}

// Bound implements gfx.Context.
func (c *Context) Bound() gfx.Texture {
	if c.bound == nil {
		return nil
	}
	return c.bound
}

// Bind implements gfx.Context.
func (c *Context) Bind(tex gfx.Texture) {
	if tex == nil {
		c.bound = nil
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}
	t := tex.(*Texture)
	c.bound = t
	gl.BindTexture(gl.TEXTURE_2D, t.name)
}

// TexImage2D implements gfx.Context. Desktop GL has no flip-on-upload
// pixel store flag, the flip is applied to the rows before upload.
func (c *Context) TexImage2D(w, h int, pixels []byte) {
	if c.flipY {
		pixels = flipRows(w, h, pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

// SetWrap implements gfx.Context.
func (c *Context) SetWrap(s, t, r gfx.WrapMode) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapConst(s))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapConst(t))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_R, wrapConst(r))
}

// SetMinFilter implements gfx.Context.
func (c *Context) SetMinFilter(f gfx.Filter) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterConst(f))
}

// SetMagFilter implements gfx.Context.
func (c *Context) SetMagFilter(f gfx.Filter) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterConst(f))
}

// SetLODBias implements gfx.Context.
func (c *Context) SetLODBias(bias float32) {
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_LOD_BIAS, bias)
}

// SetAnisotropy implements gfx.Context.
func (c *Context) SetAnisotropy(level float32) {
	gl.TexParameterf(gl.TEXTURE_2D, glTextureMaxAnisotropy, level)
}

// GenerateMipmaps implements gfx.Context.
func (c *Context) GenerateMipmaps() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

// SetFlipY implements gfx.Context.
func (c *Context) SetFlipY(flip bool) {
	c.flipY = flip
}

// FlipY implements gfx.Context.
func (c *Context) FlipY() bool {
	return c.flipY
}

func wrapConst(mode gfx.WrapMode) int32 {
	switch mode {
	case gfx.WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gfx.WrapRepeat:
		return gl.REPEAT
	default:
		return gl.MIRRORED_REPEAT
	}
}

func filterConst(f gfx.Filter) int32 {
	switch f {
	case gfx.FilterNearest:
		return gl.NEAREST
	case gfx.FilterNearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case gfx.FilterLinearMipmapNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case gfx.FilterNearestMipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case gfx.FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}

// flipRows reverses the row order of a w by h RGBA buffer.
func flipRows(w, h int, pixels []byte) []byte {
	stride := w * 4
	flipped := make([]byte, len(pixels))
	for row := 0; row < h; row++ {
		src := pixels[row*stride : (row+1)*stride]
		copy(flipped[(h-1-row)*stride:], src)
	}
	return flipped
}

// NewRenderer queries driver capabilities of the current GL context.
func NewRenderer() *Renderer {
	var count int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &count)

	extensions := make(map[string]bool, count)
	for idx := uint32(0); idx < uint32(count); idx++ {
		extensions[gl.GoStr(gl.GetStringi(gl.EXTENSIONS, idx))] = true
	}
	return &Renderer{extensions: extensions}
}

// Renderer is the OpenGL implementation of gfx.Renderer.
type Renderer struct {
	extensions map[string]bool
}

// Extension implements gfx.Renderer.
func (r *Renderer) Extension(name string) bool {
	return r.extensions[name]
}
