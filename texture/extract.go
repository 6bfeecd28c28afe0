// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package texture

import (
	log "github.com/sirupsen/logrus"

	"github.com/devblok/texel/pix"
)

// binaryPixels produces a CPU readable RGBA copy of a source,
// dispatching on its concrete type. Decoded images go through an
// off-screen rasterization, canvases read back directly. Sources of
// any other type yield no copy, the load itself is unaffected.
func binaryPixels(src pix.Source) []byte {
	switch s := src.(type) {
	case *pix.Image:
		return s.RGBA()
	case *pix.Canvas:
		return append([]byte(nil), s.RGBA()...)
	default:
		log.Warnf("binary copy not supported for source type %T", src)
		return nil
	}
}
