// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package bundle

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/pierrec/lz4"
)

// Open opens the archive read through r. It checks that the file
// actually is a bundle archive and reads the full index, so every
// file's location is known before any of them is read.
func Open(r io.ReaderAt) (*Archive, error) {
	head := make([]byte, magicLength+headerSizeLength)
	if num, err := r.ReadAt(head, 0); err != nil {
		return nil, err
	} else if num < len(head) {
		return nil, ErrFileFormat
	}
	for idx, b := range magic {
		if head[idx] != b {
			return nil, ErrFileFormat
		}
	}

	headerSize := binaryToInt64(head[magicLength:])
	if headerSize <= 0 {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if num, err := r.ReadAt(headerBytes, magicLength+headerSizeLength); err != nil {
		return nil, err
	} else if int64(num) < headerSize {
		return nil, ErrFileFormat
	}

	var header Header
	if err := gobDecode(&header, headerBytes); err != nil {
		return nil, ErrFileFormat
	}

	return &Archive{
		reader: r,
		header: header,
		base:   magicLength + headerSizeLength + headerSize,
	}, nil
}

// OpenFile opens a bundle archive from the filesystem.
func OpenFile(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	ar, err := Open(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	ar.closer = f
	return ar, nil
}

// Archive provides concurrent io for a bundle file, and can provide
// an io.Reader for each file separately to perform actions on.
// Implements asset.Opener.
type Archive struct {
	reader io.ReaderAt
	closer io.Closer
	header Header
	base   int64
}

// Header returns the archive header.
func (a *Archive) Header() Header {
	return a.header
}

// List returns the names of all files in the archive, in index order.
func (a *Archive) List() []string {
	names := make([]string, len(a.header.Index))
	for idx, entry := range a.header.Index {
		names[idx] = entry.Name
	}
	return names
}

// Open returns a reader for a file in the Archive that decompresses
// on the fly. Closing it is optional.
func (a *Archive) Open(name string) (io.ReadCloser, error) {
	entry, ok := a.find(name)
	if !ok {
		return nil, ErrNotFound
	}
	section := io.NewSectionReader(a.reader, a.base+entry.Offset, entry.CompressedSize)
	return &Reader{
		decompressor: lz4.NewReader(section),
		remaining:    entry.Size,
	}, nil
}

// ReadAll returns the entire contents of a file with a given name.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	reader, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	return ioutil.ReadAll(reader)
}

// Close releases the underlying file when the archive was opened
// with OpenFile, otherwise it is a no-op.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *Archive) find(name string) (IndexEntry, bool) {
	for _, entry := range a.header.Index {
		if entry.Name == name {
			return entry, true
		}
	}
	return IndexEntry{}, false
}

// Reader is a reader for a single file in an Archive. Abstracts away
// the location and compressed state of the file.
type Reader struct {
	decompressor *lz4.Reader
	remaining    int64
}

// Read reads already decompressed data.
func (r *Reader) Read(p []byte) (int, error) {
	if r.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > r.remaining {
		p = p[:r.remaining]
	}
	num, err := r.decompressor.Read(p)
	r.remaining -= int64(num)
	return num, err
}

// Close implements io.ReadCloser.
func (r *Reader) Close() error {
	return nil
}
