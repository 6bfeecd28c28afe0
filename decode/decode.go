// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package decode turns named assets into usable pixel sources.
package decode

import (
	"fmt"
	"image"

	// Image formats recognised by the decoder.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/devblok/texel/asset"
	"github.com/devblok/texel/pix"
)

// NewDecoder creates a Decoder that resolves names through src.
func NewDecoder(src asset.Opener) *Decoder {
	return &Decoder{source: src}
}

// Decoder decodes images out of an asset source.
type Decoder struct {
	source asset.Opener
}

// Image decodes the named asset into an image source.
func (d *Decoder) Image(name string) (*pix.Image, error) {
	img, err := d.decode(name)
	if err != nil {
		return nil, err
	}
	return pix.NewImage(img), nil
}

// Canvas decodes the named asset and rasterizes it onto a canvas.
func (d *Decoder) Canvas(name string) (*pix.Canvas, error) {
	img, err := d.decode(name)
	if err != nil {
		return nil, err
	}
	return pix.CanvasFromImage(img), nil
}

func (d *Decoder) decode(name string) (image.Image, error) {
	reader, err := d.source.Open(name)
	if err != nil {
		return nil, fmt.Errorf("asset %s open failed: %s", name, err)
	}
	defer reader.Close()

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decode of %s failed: %s", name, err)
	}
	return img, nil
}
