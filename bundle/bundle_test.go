// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package bundle_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/exp/mmap"

	"github.com/devblok/texel/asset"
	"github.com/devblok/texel/bundle"
)

// Archives double as asset sources for the loader pipeline.
var _ asset.Opener = (*bundle.Archive)(nil)

var (
	testString1 = "idunvovkjnreovmegihjbrqlkmfrjnb"
	testString2 = "idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb"
)

func buildTestArchive(t *testing.T) *bundle.Archive {
	t.Helper()
	builder := bundle.NewBuilder(bundle.Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err := builder.Add("test", strings.NewReader(testString1)); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("test2", strings.NewReader(testString2)); err != nil {
		t.Fatal(err)
	}

	buf := bytes.NewBuffer([]byte{})
	if written, err := builder.WriteTo(buf); err != nil {
		t.Fatal(err)
	} else if written != int64(buf.Len()) {
		t.Errorf("reported %d written bytes, buffer has %d", written, buf.Len())
	}

	ar, err := bundle.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	return ar
}

func TestCreateAndRead(t *testing.T) {
	ar := buildTestArchive(t)

	f, err := ar.Open("test")
	if err != nil {
		t.Fatal(err)
	}
	result, err := ioutil.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(result) != testString1 {
		t.Error("test string does not match up")
	}
}

func TestCreateAndReadAll(t *testing.T) {
	ar := buildTestArchive(t)

	for name, want := range map[string]string{
		"test":  testString1,
		"test2": testString2,
	} {
		data, err := ar.ReadAll(name)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != want {
			t.Errorf("%s does not match up", name)
		}
	}
}

func TestList(t *testing.T) {
	ar := buildTestArchive(t)

	names := ar.List()
	if len(names) != 2 || names[0] != "test" || names[1] != "test2" {
		t.Errorf("index lists %v", names)
	}
}

func TestMissingFile(t *testing.T) {
	ar := buildTestArchive(t)

	if _, err := ar.ReadAll("gone"); err != bundle.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNotAnArchive(t *testing.T) {
	junk := bytes.NewReader([]byte("this is definitely not an archive, but it is long enough"))
	if _, err := bundle.Open(junk); err != bundle.ErrFileFormat {
		t.Errorf("expected ErrFileFormat, got %v", err)
	}
}

// Memory mapped files are the intended way to read shipped archives,
// mmap.ReaderAt serves the same io.ReaderAt surface as an open file.
func TestOpenMapped(t *testing.T) {
	builder := bundle.NewBuilder(bundle.Header{Version: 1})
	if err := builder.Add("test", strings.NewReader(testString1)); err != nil {
		t.Fatal(err)
	}

	f, err := ioutil.TempFile("", "texelBundle")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	if _, err := builder.WriteTo(f); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	mapped, err := mmap.Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer mapped.Close()

	ar, err := bundle.Open(mapped)
	if err != nil {
		t.Fatal(err)
	}
	result, err := ar.ReadAll("test")
	if err != nil {
		t.Fatal(err)
	}
	if string(result) != testString1 {
		t.Error("test string does not match up")
	}
}

func TestHeaderSurvivesRoundTrip(t *testing.T) {
	ar := buildTestArchive(t)

	header := ar.Header()
	if header.Author != "devblok" || header.Version != 1 {
		t.Errorf("header is %+v", header)
	}
	if len(header.Index) != 2 {
		t.Fatalf("index has %d entries, want 2", len(header.Index))
	}
	if header.Index[0].Size != int64(len(testString1)) {
		t.Errorf("entry size is %d, want %d", header.Index[0].Size, len(testString1))
	}
}

func BenchmarkReadAll(b *testing.B) {
	builder := bundle.NewBuilder(bundle.Header{Version: 1})
	payload := strings.Repeat(testString2, 1024)
	builder.Add("big", strings.NewReader(payload))

	buf := bytes.NewBuffer([]byte{})
	if _, err := builder.WriteTo(buf); err != nil {
		b.Fatal(err)
	}
	ar, err := bundle.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for idx := 0; idx < b.N; idx++ {
		if _, err := ar.ReadAll("big"); err != nil {
			b.Fatal(err)
		}
	}
}
