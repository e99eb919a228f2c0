package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/google/subcommands"
)

type inspectCmd struct {
	inputPath string
}

func (c *inspectCmd) Name() string     { return "inspect" }
func (c *inspectCmd) Synopsis() string { return "print a summary of a map document" }
func (c *inspectCmd) Usage() string {
	return "tmxutils inspect -i <path>\n"
}
func (c *inspectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input map path")
}

func (c *inspectCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	engine := tmx.NewEngine()
	m, err := engine.ReadMap(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	fmt.Printf("map %v\n", m.Path())
	fmt.Printf("  %v %v, %vx%v cells of %vx%v px\n",
		m.Orientation, m.RenderOrder, m.Width, m.Height, m.TileWidth, m.TileHeight)
	if m.Infinite {
		fmt.Println("  infinite")
	}

	fmt.Printf("tilesets (%v)\n", len(m.Tilesets))
	for _, ref := range m.Tilesets {
		ts := ref.Tileset
		source := ts.Path()
		if source == "" {
			source = "embedded"
		}
		fmt.Printf("  [%v..] %q %v tiles (%v)\n", ref.FirstGID, ts.Name, ts.Len(), source)
	}

	fmt.Printf("layers (%v)\n", len(m.FlatLayers()))
	for _, layer := range m.FlatLayers() {
		info := layer.Info()
		switch l := layer.(type) {
		case *tmx.TileLayer:
			placed := 0
			for range l.Cells() {
				placed++
			}
			fmt.Printf("  tile   %q bounds %v, %v placed\n", info.Name, l.Bounds(), placed)
		case *tmx.ObjectLayer:
			fmt.Printf("  object %q %v objects\n", info.Name, len(l.Objects()))
		case *tmx.ImageLayer:
			fmt.Printf("  image  %q %v\n", info.Name, l.Image.Source)
		}
	}

	return subcommands.ExitSuccess
}
