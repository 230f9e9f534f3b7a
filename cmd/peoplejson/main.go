package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ananthvk/peopledb"
	"github.com/spf13/afero"
)

// personJSON is the exported form of a person
type personJSON struct {
	Ordinal  int    `json:"ordinal"`
	Name     string `json:"name"`
	IDNumber string `json:"id_number"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
}

func main() {
	file := flag.String("file", peopledb.DefaultFileName, "Path of the store file")
	indent := flag.Bool("indent", false, "Indent the output")
	flag.Parse()

	store := peopledb.New(afero.NewOsFs(), *file)
	entries, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	people := make([]personJSON, len(entries))
	for i, entry := range entries {
		people[i] = personJSON{
			Ordinal:  entry.Ordinal,
			Name:     entry.Person.Name,
			IDNumber: entry.Person.IDNumber,
			Age:      entry.Person.Age,
			Email:    entry.Person.Email,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	if *indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(people); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}
