package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type exportCmd struct {
	inputPath  string
	outputPath string
}

func (c *exportCmd) Name() string     { return "export_db" }
func (c *exportCmd) Synopsis() string { return "export a map's layers and cells into an SQLite database" }
func (c *exportCmd) Usage() string {
	return "tmxutils export_db -i <path> -o <path>\n"
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input map path")
	f.StringVar(&c.outputPath, "o", "", "Output database path")
}

// dbWriter exports one map into a fresh SQLite database: a layers table, a
// cells table keyed by layer and position, and an objects table.
type dbWriter struct {
	db        *sql.DB
	cellStmt  *sql.Stmt
	layerStmt *sql.Stmt
}

func newDBWriter(filePath string) (*dbWriter, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE layers (id INTEGER, name TEXT, kind TEXT, opacity REAL, visible INTEGER);
		CREATE TABLE cells (layer_id INTEGER, x INTEGER, y INTEGER, tileset TEXT, tile_id INTEGER, flip INTEGER);
		CREATE TABLE objects (layer_id INTEGER, object_id INTEGER, name TEXT, type TEXT, x REAL, y REAL);
	`)
	if err != nil {
		return nil, err
	}

	cellStmt, err := db.Prepare("INSERT INTO cells (layer_id, x, y, tileset, tile_id, flip) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}
	layerStmt, err := db.Prepare("INSERT INTO layers (id, name, kind, opacity, visible) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}

	return &dbWriter{db, cellStmt, layerStmt}, nil
}

func (w *dbWriter) Close() error {
	return errors.Join(w.cellStmt.Close(), w.layerStmt.Close(), w.db.Close())
}

func (w *dbWriter) writeMap(m *tmx.Map) error {
	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	defer bar.Finish()

	for _, layer := range m.FlatLayers() {
		info := layer.Info()
		switch l := layer.(type) {
		case *tmx.TileLayer:
			if _, err := w.layerStmt.Exec(info.ID, info.Name, "tile", info.Abs.Opacity, info.Abs.Visible); err != nil {
				return err
			}
			for pos, cell := range l.Cells() {
				_, err := w.cellStmt.Exec(info.ID, pos.X, pos.Y,
					cell.Tile.Tileset().Name, cell.Tile.ID, uint8(cell.Flip))
				if err != nil {
					return err
				}
				bar.Add(1)
			}
		case *tmx.ObjectLayer:
			if _, err := w.layerStmt.Exec(info.ID, info.Name, "object", info.Abs.Opacity, info.Abs.Visible); err != nil {
				return err
			}
			for _, obj := range l.Objects() {
				_, err := w.db.Exec("INSERT INTO objects (layer_id, object_id, name, type, x, y) VALUES (?, ?, ?, ?, ?, ?)",
					info.ID, obj.ID, obj.Name, obj.Type, obj.X, obj.Y)
				if err != nil {
					return err
				}
				bar.Add(1)
			}
		case *tmx.ImageLayer:
			if _, err := w.layerStmt.Exec(info.ID, info.Name, "image", info.Abs.Opacity, info.Abs.Visible); err != nil {
				return err
			}
		}
	}

	return nil
}

func (w *dbWriter) finalize() error {
	_, err := w.db.Exec("CREATE INDEX cell_index ON cells (layer_id, x, y)")
	return err
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	m, err := tmx.NewEngine().ReadMap(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	// sql.Open would happily append to a stale database.
	if err := os.Remove(c.outputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println(err)
		return subcommands.ExitFailure
	}

	writer, err := newDBWriter(c.outputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer writer.Close()

	if err := writer.writeMap(m); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if err := writer.finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
