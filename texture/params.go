// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package texture

import (
	"github.com/devblok/texel/gfx"
)

const (
	// lodBias sharpens mip selection for smooth power-of-two sources.
	lodBias = -0.4

	// anisotropyLevel is the fixed level applied when anisotropic
	// filtering is requested and available.
	anisotropyLevel = 4
)

func powerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// applyParams derives sampling, wrap and mipmap parameters from the
// dimensions of the uploaded source. Runs on every upload of real
// pixels, never for the placeholder. Expects the texture object to be
// bound. Non-power-of-two sources cannot mipmap, so the policy
// degrades to linear or nearest filtering for them.
func (t *Texture) applyParams(width, height int) {
	if t.opts.Anisotropy && t.renderer != nil && t.renderer.Extension(gfx.ExtAnisotropic) {
		t.ctx.SetAnisotropy(anisotropyLevel)
	}

	t.ctx.SetWrap(t.opts.WrapS, t.opts.WrapT, t.opts.WrapR)

	switch {
	case powerOfTwo(width) && powerOfTwo(height) && !t.opts.Pixelated:
		if t.opts.DisableMipmaps {
			t.ctx.SetMinFilter(gfx.FilterLinear)
		} else {
			t.ctx.SetMinFilter(gfx.FilterLinearMipmapLinear)
		}
		t.ctx.SetLODBias(lodBias)
		if !t.opts.DisableMipmaps {
			t.ctx.GenerateMipmaps()
		}
	case t.opts.Pixelated:
		t.ctx.SetMinFilter(gfx.FilterNearest)
		t.ctx.SetMagFilter(gfx.FilterNearest)
	default:
		t.ctx.SetMinFilter(gfx.FilterLinear)
	}
}
