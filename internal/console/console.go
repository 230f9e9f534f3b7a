// Package console implements the interactive menu used to manage the people store
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ananthvk/peopledb"
)

const (
	optionCreate = iota + 1
	optionList
	optionFind
	optionUpdate
	optionDelete
	optionExit
)

const clearScreen = "\033[H\033[2J"

const separator = "--------------------------------------------------------------------------------------------"

// errEndOfInput is returned by readLine once the input is exhausted, it ends the session like Exit
var errEndOfInput = errors.New("end of input")

// Console is a menu driven read-eval-print loop on top of a Store. It is not safe for concurrent use
type Console struct {
	store   *peopledb.Store
	reader  *bufio.Reader
	out     io.Writer
	clear   bool
	pause   bool
}

type Option func(*Console)

// WithScreenClear clears the terminal with an ANSI escape sequence before the menu is shown again
func WithScreenClear(enabled bool) Option {
	return func(c *Console) {
		c.clear = enabled
	}
}

// WithPause waits for ENTER after every action, so the result can be read before the screen is cleared
func WithPause(enabled bool) Option {
	return func(c *Console) {
		c.pause = enabled
	}
}

// New returns a console reading commands from in and writing everything to out. Screen clearing
// and pausing are enabled by default
func New(store *peopledb.Store, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		store:   store,
		reader:  bufio.NewReader(in),
		out:     out,
		clear:   true,
		pause:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run shows the menu and dispatches the selected action until Exit is chosen or the input ends.
// Errors of single actions are printed and never stop the loop, only a failure to read the
// input is returned
func (c *Console) Run() error {
	for {
		c.printMenu()
		c.printf("Choose an option: ")
		line, err := c.readLine()
		if err != nil {
			return c.finish(err)
		}

		option, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			option = 0
		}

		switch option {
		case optionCreate:
			err = c.create()
		case optionList:
			err = c.list()
		case optionFind:
			err = c.find()
		case optionUpdate:
			err = c.update()
		case optionDelete:
			err = c.delete()
		case optionExit:
			c.printf("\nExiting. See you later!\n")
			return nil
		default:
			c.printf("\nInvalid option. Try again.\n")
		}
		if err != nil {
			return c.finish(err)
		}

		if c.pause {
			c.printf("\nPress ENTER to continue...")
			if _, err := c.readLine(); err != nil {
				return c.finish(err)
			}
		}
		if c.clear {
			c.printf("%s", clearScreen)
		}
	}
}

func (c *Console) finish(err error) error {
	if errors.Is(err, errEndOfInput) {
		c.printf("\n")
		return nil
	}
	return err
}

func (c *Console) printMenu() {
	c.printf("======================================\n")
	c.printf("        PEOPLE REGISTRY\n")
	c.printf("======================================\n")
	c.printf("1. Register a new person (Create)\n")
	c.printf("2. List all people (Read)\n")
	c.printf("3. Find a person by id number (Read)\n")
	c.printf("4. Update a person by id number (Update)\n")
	c.printf("5. Remove a person by id number (Delete)\n")
	c.printf("6. Exit\n")
	c.printf("======================================\n")
}

func (c *Console) create() error {
	c.printf("\n--- REGISTER A NEW PERSON ---\n")
	var p peopledb.Person
	var err error

	if p.Name, err = c.promptText("Name: ", peopledb.ValidateName); err != nil {
		return err
	}

	for {
		c.printf("ID number (11 digits, numbers only): ")
		if p.IDNumber, err = c.readLine(); err != nil {
			return err
		}
		if !peopledb.ValidateIDNumber(p.IDNumber) {
			c.printf("Error: invalid id number. It must have 11 digits and contain only numbers.\n")
			continue
		}
		duplicate, err := c.store.IsDuplicate(p.IDNumber)
		if err != nil {
			c.printError(err)
			return nil
		}
		if duplicate {
			c.printf("Error: id number already registered. The id number must be unique.\n")
			continue
		}
		break
	}

	c.printf("Age: ")
	for {
		line, err := c.readLine()
		if err != nil {
			return err
		}
		if p.Age, err = peopledb.ParseAge(line); err == nil {
			break
		}
		c.printf("Error: invalid age. Enter a positive integer: ")
	}

	if p.Email, err = c.promptText("Email: ", peopledb.ValidateEmail); err != nil {
		return err
	}

	if err := c.store.Create(p); err != nil {
		c.printError(err)
		return nil
	}
	c.printf("\nPerson registered successfully!\n")
	return nil
}

func (c *Console) list() error {
	entries, err := c.store.List()
	if err != nil {
		c.printError(err)
		return nil
	}
	if len(entries) == 0 {
		c.printf("\n--- PEOPLE ---\n")
		c.printf("No records found.\n")
		return nil
	}

	c.printf("\n--- REGISTERED PEOPLE ---\n")
	c.printf("%s\n", separator)
	c.printf("| %-3s | %-30s | %-11s | %-5s | %-30s |\n", "#", "NAME", "ID NUMBER", "AGE", "EMAIL")
	c.printf("%s\n", separator)
	for _, entry := range entries {
		p := entry.Person
		c.printf("| %-3d | %-30s | %-11s | %-5d | %-30s |\n", entry.Ordinal, p.Name, p.IDNumber, p.Age, p.Email)
	}
	c.printf("%s\n", separator)
	return nil
}

func (c *Console) find() error {
	c.printf("\n--- FIND A PERSON BY ID NUMBER ---\n")
	idNumber, ok, err := c.promptIDNumber("Enter the id number to search for: ")
	if err != nil || !ok {
		return err
	}

	p, err := c.store.Find(idNumber)
	if err != nil {
		c.printLookupError(idNumber, err)
		return nil
	}
	c.printf("\n--- PERSON FOUND ---\n")
	c.printPerson(p)
	return nil
}

func (c *Console) update() error {
	c.printf("\n--- UPDATE A PERSON BY ID NUMBER ---\n")
	idNumber, ok, err := c.promptIDNumber("Enter the id number of the person to update: ")
	if err != nil || !ok {
		return err
	}

	current, err := c.store.Find(idNumber)
	if err != nil {
		c.printLookupError(idNumber, err)
		return nil
	}
	c.printf("\nCurrent record:\n")
	c.printf("Name:   %s\n", current.Name)
	c.printf("Age:    %d\n", current.Age)
	c.printf("Email:  %s\n", current.Email)

	c.printf("\nEnter the new values (leave blank to keep the current value):\n")
	var patch peopledb.Patch
	c.printf("New name (%s): ", current.Name)
	if patch.Name, err = c.readLine(); err != nil {
		return err
	}
	c.printf("New age (%d): ", current.Age)
	if patch.Age, err = c.readLine(); err != nil {
		return err
	}
	c.printf("New email (%s): ", current.Email)
	if patch.Email, err = c.readLine(); err != nil {
		return err
	}

	result, err := c.store.Update(idNumber, patch)
	if err != nil {
		c.printLookupError(idNumber, err)
		return nil
	}
	for _, warning := range result.Warnings {
		c.printf("Warning: %s. Keeping the current value.\n", warning)
	}
	c.printf("\nRecord updated successfully!\n")
	return nil
}

func (c *Console) delete() error {
	c.printf("\n--- REMOVE A PERSON BY ID NUMBER ---\n")
	idNumber, ok, err := c.promptIDNumber("Enter the id number of the person to remove: ")
	if err != nil || !ok {
		return err
	}

	removed, err := c.store.Delete(idNumber)
	if err != nil {
		c.printLookupError(idNumber, err)
		return nil
	}
	c.printf("\nRecord of %s (id number %s) removed.\n", removed.Name, removed.IDNumber)
	c.printf("Person removed successfully!\n")
	return nil
}

// promptIDNumber reads a single id number. An invalid id number is reported and ok is false
func (c *Console) promptIDNumber(prompt string) (string, bool, error) {
	c.printf("%s", prompt)
	idNumber, err := c.readLine()
	if err != nil {
		return "", false, err
	}
	if !peopledb.ValidateIDNumber(idNumber) {
		c.printf("Error: invalid id number. It must have 11 digits and contain only numbers.\n")
		return "", false, nil
	}
	return idNumber, true, nil
}

// promptText asks for a text value until validate accepts it
func (c *Console) promptText(prompt string, validate func(string) error) (string, error) {
	for {
		c.printf("%s", prompt)
		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		if err := validate(line); err != nil {
			c.printf("Error: %s\n", err)
			continue
		}
		return line, nil
	}
}

func (c *Console) printPerson(p peopledb.Person) {
	c.printf("Name:       %s\n", p.Name)
	c.printf("ID number:  %s\n", p.IDNumber)
	c.printf("Age:        %d\n", p.Age)
	c.printf("Email:      %s\n", p.Email)
}

func (c *Console) printLookupError(idNumber string, err error) {
	if errors.Is(err, peopledb.ErrNotFound) {
		c.printf("\nError: person with id number %s not found.\n", idNumber)
		return
	}
	c.printError(err)
}

func (c *Console) printError(err error) {
	c.printf("\nError: %s\n", err)
}

// readLine returns the next line of input without the line terminator. Lines have no length
// limit, oversized values are rejected by the field validation instead. A last line without a
// terminator is still returned
func (c *Console) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", errEndOfInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
