// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package pix provides CPU side pixel sources for texture uploads.
package pix

import (
	"image"
	"image/draw"
)

// Source is a rasterizable pixel source that can populate a texture.
type Source interface {

	// Size returns the pixel dimensions of the source.
	Size() (w, h int)

	// RGBA returns the source pixels as a flat RGBA byte buffer,
	// row major, four bytes per pixel.
	RGBA() []byte
}

// NewImage wraps an already decoded image.
func NewImage(img image.Image) *Image {
	return &Image{img: img}
}

// Image is a decoded but not yet rasterized image source.
type Image struct {
	img image.Image
}

// Size implements Source.
func (i *Image) Size() (int, int) {
	bounds := i.img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// RGBA rasterizes the decoded image onto a controlled RGBA canvas
// and returns its pixels. Each call performs a fresh rasterization.
func (i *Image) RGBA() []byte {
	bounds := i.img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), i.img, bounds.Min, draw.Src)
	return rgba.Pix
}

// Inner returns the wrapped decoded image.
func (i *Image) Inner() image.Image {
	return i.img
}

// NewCanvas creates an empty canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{rgba: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// CanvasFromImage rasterizes a decoded image onto a new canvas.
func CanvasFromImage(img image.Image) *Canvas {
	bounds := img.Bounds()
	canvas := NewCanvas(bounds.Dx(), bounds.Dy())
	draw.Draw(canvas.rgba, canvas.rgba.Bounds(), img, bounds.Min, draw.Src)
	return canvas
}

// Canvas is a writable RGBA pixel buffer with direct readback.
type Canvas struct {
	rgba *image.RGBA
}

// Size implements Source.
func (c *Canvas) Size() (int, int) {
	bounds := c.rgba.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// RGBA returns the canvas pixels without copying.
func (c *Canvas) RGBA() []byte {
	return c.rgba.Pix
}

// Inner returns the backing RGBA image for direct drawing.
func (c *Canvas) Inner() *image.RGBA {
	return c.rgba
}
