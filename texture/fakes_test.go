// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package texture_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/devblok/texel/gfx"
	"github.com/devblok/texel/pix"
)

type fakeHandle struct {
	released bool
}

func (f *fakeHandle) Release() {
	f.released = true
}

type upload struct {
	w, h   int
	pixels []byte
	flip   bool
	bound  gfx.Texture
}

// fakeContext records every driver call so tests can assert on the
// derived parameters. Starts out with the flip flag set, like a
// fresh driver.
type fakeContext struct {
	mutex sync.Mutex

	bound gfx.Texture
	flip  bool

	uploads     []upload
	wrap        [3]gfx.WrapMode
	wrapCalls   int
	min, mag    gfx.Filter
	minCalls    int
	magCalls    int
	lodBias     float32
	lodCalls    int
	mipmapCalls int
	anisotropy  float32

	failCreate bool
}

func newFakeContext() *fakeContext {
	return &fakeContext{flip: true}
}

func (c *fakeContext) NewTexture() (gfx.Texture, error) {
	if c.failCreate {
		return nil, errors.New("out of texture objects")
	}
	return &fakeHandle{}, nil
}

func (c *fakeContext) Bound() gfx.Texture {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.bound
}

func (c *fakeContext) Bind(tex gfx.Texture) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.bound = tex
}

func (c *fakeContext) TexImage2D(w, h int, pixels []byte) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.uploads = append(c.uploads, upload{
		w:      w,
		h:      h,
		pixels: append([]byte(nil), pixels...),
		flip:   c.flip,
		bound:  c.bound,
	})
}

func (c *fakeContext) SetWrap(s, t, r gfx.WrapMode) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.wrap = [3]gfx.WrapMode{s, t, r}
	c.wrapCalls++
}

func (c *fakeContext) SetMinFilter(f gfx.Filter) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.min = f
	c.minCalls++
}

func (c *fakeContext) SetMagFilter(f gfx.Filter) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.mag = f
	c.magCalls++
}

func (c *fakeContext) SetLODBias(bias float32) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.lodBias = bias
	c.lodCalls++
}

func (c *fakeContext) SetAnisotropy(level float32) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.anisotropy = level
}

func (c *fakeContext) GenerateMipmaps() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.mipmapCalls++
}

func (c *fakeContext) SetFlipY(flip bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.flip = flip
}

func (c *fakeContext) FlipY() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.flip
}

func (c *fakeContext) lastUpload() upload {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.uploads[len(c.uploads)-1]
}

func (c *fakeContext) uploadCount() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.uploads)
}

type fakeRenderer struct {
	extensions map[string]bool
}

func (r *fakeRenderer) Extension(name string) bool {
	return r.extensions[name]
}

// fakeDecoder serves pixel sources from memory. When gate is set,
// every decode blocks until the gate channel is closed.
type fakeDecoder struct {
	gate     chan struct{}
	images   map[string]*pix.Image
	canvases map[string]*pix.Canvas
}

func (d *fakeDecoder) Image(name string) (*pix.Image, error) {
	if d.gate != nil {
		<-d.gate
	}
	img, ok := d.images[name]
	if !ok {
		return nil, fmt.Errorf("no image %s", name)
	}
	return img, nil
}

func (d *fakeDecoder) Canvas(name string) (*pix.Canvas, error) {
	if d.gate != nil {
		<-d.gate
	}
	canvas, ok := d.canvases[name]
	if !ok {
		return nil, fmt.Errorf("no canvas %s", name)
	}
	return canvas, nil
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
