// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package texture manages the lifecycle of single 2D texture objects.
// A texture resource owns exactly one driver texture handle for its
// whole life. Every creation entry point uploads a 1x1 opaque black
// placeholder first, so the handle is always valid to bind, and then
// populates it with real pixels either synchronously (colors, already
// decoded sources) or asynchronously (paths, channel composites).
package texture

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/texel/gfx"
	"github.com/devblok/texel/pix"
)

var lastID uint64

func nextID() uint64 {
	return atomic.AddUint64(&lastID, 1)
}

// Decoder turns asset names into pixel sources. decode.Decoder
// implements it.
type Decoder interface {

	// Image decodes the named asset into an image source.
	Image(name string) (*pix.Image, error)

	// Canvas decodes the named asset onto a canvas.
	Canvas(name string) (*pix.Canvas, error)
}

// New creates a texture resource on the given driver context. A valid
// placeholder texture is uploaded before New returns, the resource is
// not loaded until one of the From entry points completes. The
// renderer may be nil when anisotropic filtering is never requested,
// the decoder may be nil when no path based loading is used.
func New(ctx gfx.Context, renderer gfx.Renderer, decoder Decoder, opts Options) (*Texture, error) {
	handle, err := ctx.NewTexture()
	if err != nil {
		return nil, fmt.Errorf("texture object creation failed: %s", err)
	}

	t := &Texture{
		id:       nextID(),
		ctx:      ctx,
		renderer: renderer,
		decoder:  decoder,
		opts:     normalize(opts),
		handle:   handle,
	}
	t.uploadPlaceholder()
	return t, nil
}

// Texture is a managed GPU texture resource.
type Texture struct {
	id       uint64
	ctx      gfx.Context
	renderer gfx.Renderer
	decoder  Decoder
	handle   gfx.Texture
	opts     Options

	mutex      sync.Mutex
	loaded     bool
	binary     []byte
	sourcePath string
	source     pix.Source
	err        error
}

// ID implements gfx.Resource.
func (t *Texture) ID() uint64 {
	return t.id
}

// Handle returns the driver texture handle. Valid from construction
// onward, pixels are rewritten in place and the handle never changes.
func (t *Texture) Handle() gfx.Texture {
	return t.handle
}

// Options returns the resource configuration.
func (t *Texture) Options() Options {
	return t.opts
}

// Loaded reports whether real pixel data has been uploaded.
func (t *Texture) Loaded() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.loaded
}

// Binary returns the CPU readable pixel copy, nil unless KeepBinary
// was set and a source has been uploaded.
func (t *Texture) Binary() []byte {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.binary
}

// SourcePath returns the asset name of the last path based load,
// empty otherwise.
func (t *Texture) SourcePath() string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.sourcePath
}

// Source returns the last pixel source uploaded, nil when the texture
// was populated from a flat color.
func (t *Texture) Source() pix.Source {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.source
}

// Err returns the failure of the most recent asynchronous load, if
// any. A failed load leaves the placeholder in place and never fires
// the load callback.
func (t *Texture) Err() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.err
}

// Release implements gfx.Releasable. The driver handle is destroyed,
// the resource must not be used afterwards.
func (t *Texture) Release() {
	t.handle.Release()
}

// FromColor populates the texture with a single flat color,
// synchronously. The previous source reference is cleared.
func (t *Texture) FromColor(c color.NRGBA) *Texture {
	pixels := []byte{c.R, c.G, c.B, c.A}

	t.mutex.Lock()
	t.upload(1, 1, pixels)
	t.source = nil
	t.sourcePath = ""
	t.err = nil
	t.binary = nil
	if t.opts.KeepBinary {
		t.binary = pixels
	}
	t.mutex.Unlock()

	t.setLoaded(true)
	return t
}

// FromRGB populates the texture with a flat opaque color.
func (t *Texture) FromRGB(r, g, b uint8) *Texture {
	return t.FromColor(color.NRGBA{R: r, G: g, B: b, A: 0xff})
}

// FromImage populates the texture from an already decoded image,
// synchronously.
func (t *Texture) FromImage(img *pix.Image) *Texture {
	t.fromSource(img, "")
	return t
}

// FromCanvas populates the texture from a canvas, synchronously.
func (t *Texture) FromCanvas(canvas *pix.Canvas) *Texture {
	t.fromSource(canvas, "")
	return t
}

// fromSource uploads a rasterizable source and completes a load cycle.
func (t *Texture) fromSource(src pix.Source, path string) {
	width, height := src.Size()
	pixels := src.RGBA()

	t.mutex.Lock()
	t.upload(width, height, pixels)
	t.source = src
	t.sourcePath = path
	t.err = nil
	t.binary = nil
	if t.opts.KeepBinary {
		t.binary = binaryPixels(src)
	}
	t.mutex.Unlock()

	t.setLoaded(true)
}

// setLoaded records the load state. Every assignment of true fires
// the load callback, once per completed upload. Assigning false is
// silent.
func (t *Texture) setLoaded(loaded bool) {
	t.mutex.Lock()
	t.loaded = loaded
	callback := t.opts.OnLoad
	t.mutex.Unlock()

	if loaded && callback != nil {
		callback(t)
	}
}

// uploadPlaceholder writes the 1x1 opaque black fallback. It bypasses
// the parameter policy, the placeholder keeps default driver sampling
// and is never mipmapped.
func (t *Texture) uploadPlaceholder() {
	previous := t.ctx.Bound()
	t.ctx.Bind(t.handle)
	t.ctx.TexImage2D(1, 1, []byte{0, 0, 0, 0xff})
	t.ctx.Bind(previous)
}

// upload writes pixels into the texture object and re-derives the
// sampling parameters. The previously bound texture and the driver
// flip flag are restored before returning, driver state must not leak
// to other uploads. Callers hold the state mutex.
func (t *Texture) upload(width, height int, pixels []byte) {
	previous := t.ctx.Bound()
	t.ctx.Bind(t.handle)
	t.ctx.SetFlipY(!t.opts.Pixelated && !t.opts.FlipY)
	t.ctx.TexImage2D(width, height, pixels)
	t.applyParams(width, height)
	t.ctx.SetFlipY(true)
	t.ctx.Bind(previous)
}

func (t *Texture) fail(path string, err error) {
	t.mutex.Lock()
	t.err = err
	t.mutex.Unlock()

	log.WithFields(log.Fields{
		"texture": t.id,
		"path":    path,
	}).Errorf("texture load failed: %s", err)
}
