// seehuhn.de/go/folio - page annotations for document viewers
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command folio inspects stored page annotations.
//
// Usage:
//
//	folio [-db file | -dir directory] command [arguments]
//
// The commands are:
//
//	list                      list the annotated documents
//	key file...               print the document key of the given files
//	render [options] id out   render the annotations of one page to PNG
//	clear [-page n] id        remove the annotations of a page or document
//
// Defaults for -db and -dir are read from the environment variables
// FOLIO_DB and FOLIO_DIR, which may be set in a .env file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"seehuhn.de/go/folio"
	"seehuhn.de/go/folio/canvas"
	"seehuhn.de/go/folio/persist"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("folio: .env: %v", err)
	}

	dbPath := flag.String("db", os.Getenv("FOLIO_DB"), "SQLite database holding the annotations")
	dirPath := flag.String("dir", envOr("FOLIO_DIR", "annotations"), "directory holding the annotations, if no database is given")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	backend, closeBackend, err := openBackend(*dbPath, *dirPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	args := flag.Args()[1:]
	switch cmd := flag.Arg(0); cmd {
	case "list":
		err = list(ctx, backend, os.Stdout)
	case "key":
		err = key(args, os.Stdout)
	case "render":
		err = render(ctx, backend, args)
	case "clear":
		err = clearCmd(ctx, backend, args)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if cerr := closeBackend(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] list|key|render|clear [arguments]\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func openBackend(dbPath, dirPath string) (persist.Backend, func() error, error) {
	if dbPath != "" {
		db, err := persist.OpenSQLite(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}
	dir, err := persist.OpenDir(dirPath)
	if err != nil {
		return nil, nil, err
	}
	return dir, func() error { return nil }, nil
}

func list(ctx context.Context, backend persist.Backend, w io.Writer) error {
	lister, ok := backend.(persist.Lister)
	if !ok {
		return errors.New("backend cannot list documents")
	}
	infos, err := lister.List(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILE\tANNOTATIONS\tMODIFIED")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", info.DocumentID, info.FileName,
			info.Annotations, info.LastModified.Format(time.DateTime))
	}
	return tw.Flush()
}

func key(files []string, w io.Writer) error {
	for _, name := range files {
		fi, err := os.Stat(name)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, persist.DocumentKey(fi.Name(), fi.Size(), fi.ModTime()))
	}
	return nil
}

func render(ctx context.Context, backend persist.Backend, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	pageNum := fs.Int("page", 1, "page number (1-based)")
	width := fs.Float64("width", 595, "page width in points")
	height := fs.Float64("height", 842, "page height in points")
	scale := fs.Float64("scale", 1, "pixels per point")
	fs.Parse(args)
	if fs.NArg() != 2 {
		return errors.New("usage: render [options] id output.png")
	}

	snap, err := backend.Load(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	fonts, err := canvas.NewFonts()
	if err != nil {
		return err
	}
	img := folio.Render(snap.Pages[*pageNum], *width, *height, *scale, fonts)

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func clearCmd(ctx context.Context, backend persist.Backend, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	pageNum := fs.Int("page", 0, "page number (1-based), or 0 for all pages")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("usage: clear [-page n] id")
	}

	id := fs.Arg(0)
	if _, err := backend.Load(ctx, id); err != nil {
		return err
	}
	s, err := folio.Open(ctx, id, "", &folio.Options{Backend: backend})
	if err != nil {
		return err
	}
	if *pageNum > 0 {
		s.ClearPage(*pageNum)
	} else {
		s.ClearAll()
	}
	return s.Close(ctx)
}
