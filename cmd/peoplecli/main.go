package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ananthvk/peopledb"
	"github.com/ananthvk/peopledb/internal/console"
	"github.com/spf13/afero"
)

func main() {
	filePtr := flag.String("file", peopledb.DefaultFileName, "path of the store file, use :memory for a throwaway store")
	verbosePtr := flag.Bool("v", false, "enable debug logging on stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbosePtr {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var fs afero.Fs
	path := *filePtr
	if path == ":memory" {
		fs = afero.NewMemMapFs()
		path = "in-memory-" + time.Now().Format(time.RFC3339) + ".dat"
	} else {
		fs = afero.NewOsFs()
	}

	store := peopledb.New(fs, path, peopledb.WithLogger(logger))
	slog.Debug("using store", "path", store.Path())

	if err := console.New(store, os.Stdin, os.Stdout).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "(error) input: %s\n", err)
		os.Exit(1)
	}
}
