// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package bundle

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in the
// header, it will be overwritten anyway.
func NewBuilder(header Header) *Builder {
	header.Index = nil
	return &Builder{header: header}
}

// Builder assembles archives. Archives are versioned and cannot be
// appended to, the Builder is the only way to create one. Every Add
// compresses the file into memory, WriteTo bundles the compressed
// files together with the index into a ready to use archive.
type Builder struct {
	header Header

	mutex sync.Mutex
	files []builderFile
}

type builderFile struct {
	name string
	size int64
	data []byte
}

// Add compresses and appends the contents of r to the builder under
// the given name. Blocks until lz4 finishes compression. Is safe to
// use concurrently in different goroutines.
func (b *Builder) Add(name string, r io.Reader) error {
	var compressed bytes.Buffer
	writer := lz4.NewWriter(&compressed)
	size, err := io.Copy(writer, r)
	if err != nil {
		return fmt.Errorf("lz4 compression failed: %s", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("lz4 compression failed: %s", err)
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.files = append(b.files, builderFile{
		name: name,
		size: size,
		data: compressed.Bytes(),
	})
	return nil
}

// WriteTo bundles and writes all of the files added to the Builder
// into an archive that is ready to use.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	header := b.header
	var offset int64
	for _, f := range b.files {
		header.Index = append(header.Index, IndexEntry{
			Name:           f.name,
			Offset:         offset,
			Size:           f.size,
			CompressedSize: int64(len(f.data)),
		})
		offset += int64(len(f.data))
	}

	rawHeader, err := gobEncode(header)
	if err != nil {
		return 0, err
	}

	var written int64
	for _, chunk := range [][]byte{magic[:], int64ToBinary(int64(len(rawHeader))), rawHeader} {
		num, err := w.Write(chunk)
		written += int64(num)
		if err != nil {
			return written, err
		}
	}
	for _, f := range b.files {
		num, err := w.Write(f.data)
		written += int64(num)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
