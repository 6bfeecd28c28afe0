// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package texture

import (
	"fmt"
	"image/color"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/texel/pix"
)

// FromImagePath populates the texture from a named asset,
// asynchronously. The resource keeps its placeholder and reports
// Loaded false until the decode resolves. On decode failure the
// placeholder stays indefinitely, Err is set and the load callback
// never fires. Loads are not cancellable, issuing another load before
// this one resolves is a caller-owned race where the last writer wins.
func (t *Texture) FromImagePath(path string) *Texture {
	t.setLoaded(false)
	go t.loadImage(path)
	return t
}

func (t *Texture) loadImage(path string) {
	img, err := t.decoder.Image(path)
	if err != nil {
		t.fail(path, err)
		return
	}
	t.fromSource(img, path)
}

// RSM names the three channel assets of a composite load.
type RSM struct {
	R, S, M string
}

// FromRSM assembles the texture from three separately loaded,
// equally sized channel assets, asynchronously. The resource is set
// to solid black first, completing one load cycle, then reports
// Loaded false until all three channels have decoded and the merged
// canvas is uploaded. Channel size mismatches are diagnosed but do
// not abort the merge, the first channel dictates the output size.
func (t *Texture) FromRSM(channels RSM) *Texture {
	t.FromColor(color.NRGBA{A: 0xff})
	t.setLoaded(false)
	go t.loadRSM(channels)
	return t
}

func (t *Texture) loadRSM(channels RSM) {
	paths := [3]string{channels.R, channels.S, channels.M}

	var (
		barrier  sync.WaitGroup
		canvases [3]*pix.Canvas
		errs     [3]error
	)
	for idx := range paths {
		barrier.Add(1)
		go func(idx int) {
			defer barrier.Done()
			canvases[idx], errs[idx] = t.decoder.Canvas(paths[idx])
		}(idx)
	}
	barrier.Wait()

	for idx, err := range errs {
		if err != nil {
			t.fail(paths[idx], err)
			return
		}
	}

	width, height := canvases[0].Size()
	for idx, canvas := range canvases[1:] {
		if w, h := canvas.Size(); w != width || h != height {
			log.WithFields(log.Fields{
				"texture": t.id,
				"path":    paths[idx+1],
				"want":    fmt.Sprintf("%dx%d", width, height),
				"got":     fmt.Sprintf("%dx%d", w, h),
			}).Warn("composite channel size mismatch")
		}
	}

	t.fromSource(pix.MergeChannels(canvases[0], canvases[1], canvases[2]), "")
}
