// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package asset locates named resources for loading. Sources can be
// plain directories or bundle archives, anything that can open a
// name into a reader.
package asset

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gobuffalo/envy"
)

// EnvVar is the environment variable that sets the default asset directory.
const EnvVar = "TEXEL_ASSETS"

// Opener finds and opens a named asset.
type Opener interface {

	// Open returns a reader for the asset with the given name.
	// Names use forward slashes regardless of platform.
	Open(name string) (io.ReadCloser, error)
}

// Dir opens assets relative to a filesystem directory.
type Dir string

// Open implements Opener.
func (d Dir) Open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), filepath.FromSlash(name)))
}

// EnvDir returns a Dir rooted at the directory named by EnvVar,
// falling back to the working directory. Values placed in a .env
// file are honoured.
func EnvDir() Dir {
	return Dir(envy.Get(EnvVar, "."))
}
