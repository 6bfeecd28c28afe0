// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package bundle is an api for an lz4 backed asset archive format.
// Its purpose is to be well suited for streaming resources out of it.
// The archive itself is not compressed in any form, rather every file
// is individually compressed, so it can be read from its place and
// decompressed on the fly. This somewhat compromises space efficiency,
// but the focus is getting assets from disk to a usable state as fast
// as possible. Archives can be read from concurrently.
package bundle

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
)

// package errors
var (
	ErrFileFormat = errors.New("corrupted or not a bundle archive")
	ErrNotFound   = errors.New("no such file in bundle")
)

// Sizes relevant to the header of the file.
const (
	magicLength      = 4
	headerSizeLength = 8
)

var magic = [magicLength]byte{'T', 'X', 'B', 0}

// IndexEntry is info for one file in the archive index.
// Offset is relative to the end of the header.
type IndexEntry struct {
	Name           string
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the archive header for bundle files.
type Header struct {
	Author      string
	DateCreated int64
	Version     int64
	Index       []IndexEntry
}

func gobEncode(data interface{}) ([]byte, error) {
	var encoded bytes.Buffer
	if err := gob.NewEncoder(&encoded).Encode(data); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func gobDecode(obj interface{}, bts []byte) error {
	return gob.NewDecoder(bytes.NewReader(bts)).Decode(obj)
}

func int64ToBinary(num int64) []byte {
	buf := make([]byte, headerSizeLength)
	binary.LittleEndian.PutUint64(buf, uint64(num))
	return buf
}

func binaryToInt64(bts []byte) int64 {
	return int64(binary.LittleEndian.Uint64(bts))
}
