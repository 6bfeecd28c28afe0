// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command texelpak builds and inspects texel bundle archives.
//
// Build an archive from a directory of assets:
//
//	texelpak -o assets.txb ./assets
//
// List the contents of an existing archive:
//
//	texelpak -list assets.txb
//
// When no directory is given the asset root is taken from the
// TEXEL_ASSETS environment variable, a .env file is honoured.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/texel/asset"
	"github.com/devblok/texel/bundle"
)

var (
	output = flag.String("o", "assets.txb", "Output archive file")
	author = flag.String("author", "", "Author recorded in the archive header")
	list   = flag.Bool("list", false, "List archive contents instead of building")
)

func main() {
	flag.Parse()
	godotenv.Load()

	if *list {
		listArchive(flag.Arg(0))
		return
	}

	root := flag.Arg(0)
	if root == "" {
		root = envy.Get(asset.EnvVar, ".")
	}
	buildArchive(root)
}

func buildArchive(root string) {
	builder := bundle.NewBuilder(bundle.Header{
		Author:      *author,
		DateCreated: time.Now().Unix(),
		Version:     1,
	})

	count := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := builder.Add(name, f); err != nil {
			return err
		}
		log.WithField("name", name).Info("added")
		count++
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	if count == 0 {
		log.Fatalf("no files found under %s", root)
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	written, err := builder.WriteTo(out)
	if err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{
		"archive": *output,
		"files":   count,
		"bytes":   written,
	}).Info("archive written")
}

func listArchive(path string) {
	if path == "" {
		log.Fatal("no archive given")
	}

	ar, err := bundle.OpenFile(path)
	if err != nil {
		log.Fatal(err)
	}
	defer ar.Close()

	header := ar.Header()
	log.WithFields(log.Fields{
		"author":  header.Author,
		"created": time.Unix(header.DateCreated, 0).Format(time.RFC3339),
		"version": header.Version,
	}).Info(path)

	for _, entry := range header.Index {
		log.WithFields(log.Fields{
			"size":       entry.Size,
			"compressed": entry.CompressedSize,
		}).Info(entry.Name)
	}
}
