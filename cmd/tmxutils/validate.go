package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type validateCmd struct {
	dirPath string
}

func (c *validateCmd) Name() string     { return "validate" }
func (c *validateCmd) Synopsis() string { return "load every document under a directory and report failures" }
func (c *validateCmd) Usage() string {
	return "tmxutils validate -d <path>\n"
}
func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dirPath, "d", ".", "Directory to scan")
}

func collectDocuments(dirPath string) ([]string, error) {
	var docs []string
	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".tmx", ".tsx", ".tx":
			docs = append(docs, path)
		}
		return nil
	})
	return docs, err
}

func (c *validateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	docs, err := collectDocuments(c.dirPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	engine := tmx.NewEngine()
	bar := progressbar.NewOptions(len(docs), progressbar.OptionShowIts(), progressbar.OptionShowCount())

	failures := 0
	for _, doc := range docs {
		switch filepath.Ext(doc) {
		case ".tmx":
			_, err = engine.ReadMap(doc)
		case ".tsx":
			_, err = engine.ReadTileset(doc)
		case ".tx":
			_, err = engine.ReadTemplate(doc)
		}
		if err != nil {
			failures++
			log.Println(err)
		}
		bar.Add(1)
	}
	bar.Finish()

	log.Printf("validated %v documents, %v failed", len(docs), failures)
	if failures > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
