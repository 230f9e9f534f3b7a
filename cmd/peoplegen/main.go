package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/ananthvk/peopledb"
	"github.com/spf13/afero"
)

var firstNames = []string{"Ana", "Bruno", "Carla", "Daniel", "Elisa", "Fábio", "Gabriela", "Heitor", "Isabela", "João"}
var lastNames = []string{"Silva", "Santos", "Oliveira", "Souza", "Lima", "Pereira", "Costa", "Rodrigues", "Almeida", "Nascimento"}

func randomIDNumber() string {
	b := make([]byte, peopledb.IDNumberLength)
	for i := range b {
		b[i] = byte('0' + rand.Intn(10))
	}
	return string(b)
}

func randomPerson() peopledb.Person {
	first := firstNames[rand.Intn(len(firstNames))]
	last := lastNames[rand.Intn(len(lastNames))]
	id := randomIDNumber()
	return peopledb.Person{
		Name:     first + " " + last,
		IDNumber: id,
		Age:      rand.Intn(90) + 1,
		Email:    fmt.Sprintf("%s.%s.%s@example.com", first, last, id[:4]),
	}
}

func main() {
	num := flag.Int("n", 100, "Total number of people to add")
	file := flag.String("file", peopledb.DefaultFileName, "Path of the store file")
	flag.Parse()

	store := peopledb.New(afero.NewOsFs(), *file)
	fmt.Printf("Adding %d people to %s...\n", *num, store.Path())

	start := time.Now()
	added := 0
	for added < *num {
		if err := store.Create(randomPerson()); err != nil {
			if errors.Is(err, peopledb.ErrDuplicateKey) {
				continue
			}
			fmt.Fprintf(os.Stderr, "(error) CREATE: %s\n", err)
			os.Exit(1)
		}
		added++
		if added%100 == 0 {
			fmt.Printf("\rAdded %d/%d people...", added, *num)
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("\nDone! Added %d people in %s\n", added, elapsed)
}
