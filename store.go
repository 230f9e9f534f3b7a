package peopledb

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ananthvk/peopledb/internal/record"
	"github.com/ananthvk/peopledb/internal/utils"
	"github.com/spf13/afero"
)

// DefaultFileName is the name of the store file used when no path is given
const DefaultFileName = "people.dat"

// Store keeps people in a single file of fixed size records. There is no index, every operation
// does a linear scan of the file. The file is opened at the start of each operation and closed
// before it returns, so a Store holds no open handles.
//
// There are no locks, a Store must not be used concurrently, and two processes must not
// use the same file at the same time
type Store struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// New returns a store backed by the file at path. The file is not touched until the first
// operation, and it is only created by the first successful Create
func New(fs afero.Fs, path string, opts ...Option) *Store {
	s := &Store{
		fs:     fs,
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the path of the store file
func (s *Store) Path() string {
	return s.path
}

// IsDuplicate reports whether a person with the given id number is already stored. A missing
// store file is not an error, it contains no duplicates
func (s *Store) IsDuplicate(idNumber string) (bool, error) {
	if !ValidateIDNumber(idNumber) {
		return false, fmt.Errorf("%w - %q", ErrInvalidIDNumber, idNumber)
	}
	scanner, err := record.NewScanner(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, storageError("open", err)
	}
	defer scanner.Close()

	_, _, err = s.seek(scanner, idNumber)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create appends p to the end of the store, creating the file if it does not exist. All fields
// are validated, text is stored in NFC form, and ErrDuplicateKey is returned if the id number is already present
func (s *Store) Create(p Person) error {
	p = p.normalized()
	if err := p.Validate(); err != nil {
		return err
	}
	duplicate, err := s.IsDuplicate(p.IDNumber)
	if err != nil {
		return err
	}
	if duplicate {
		return fmt.Errorf("%w - %s", ErrDuplicateKey, p.IDNumber)
	}

	writer, err := record.NewWriter(s.fs, s.path)
	if err != nil {
		return storageError("open", err)
	}
	offset, err := writer.WriteRecord(p.toRecord())
	if err != nil {
		writer.Close()
		return writeError(fmt.Sprintf("write at offset %d", offset), err)
	}
	if err := writer.Close(); err != nil {
		return storageError("close", err)
	}
	s.logger.Debug("person created", "id_number", p.IDNumber, "offset", offset, "path", s.path)
	return nil
}

// List returns every person in file order. A missing store file results in an empty list
func (s *Store) List() ([]Entry, error) {
	entries := []Entry{}
	scanner, err := record.NewScanner(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entries, nil
		}
		return nil, storageError("open", err)
	}
	defer scanner.Close()

	for {
		rec, offset, err := scanner.Scan()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, scanError(offset, err)
		}
		entries = append(entries, Entry{Ordinal: len(entries) + 1, Person: fromRecord(rec)})
	}
	s.logger.Debug("listed people", "count", len(entries), "path", s.path)
	return entries, nil
}

// Count returns the number of records in the store, computed from the size of the file
func (s *Store) Count() (int, error) {
	info, err := s.fs.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, storageError("stat", err)
	}
	if info.Size()%record.Size != 0 {
		return 0, fmt.Errorf("%w: %w: file size %d is not a multiple of the record size %d", ErrStorage, ErrCorruptStore, info.Size(), record.Size)
	}
	return int(info.Size() / record.Size), nil
}

// Find returns the first person with the given id number, or ErrNotFound
func (s *Store) Find(idNumber string) (Person, error) {
	if !ValidateIDNumber(idNumber) {
		return Person{}, fmt.Errorf("%w - %q", ErrInvalidIDNumber, idNumber)
	}
	scanner, err := record.NewScanner(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Person{}, ErrNotFound
		}
		return Person{}, storageError("open", err)
	}
	defer scanner.Close()

	rec, _, err := s.seek(scanner, idNumber)
	if err != nil {
		return Person{}, err
	}
	return fromRecord(rec), nil
}

// Update applies the non-empty fields of patch to the person with the given id number and
// overwrites the record in place, so its position in the file does not change. Fields that
// fail validation keep their previous value and are reported in UpdateResult.Warnings.
// The id number itself can't be changed
func (s *Store) Update(idNumber string, patch Patch) (UpdateResult, error) {
	if !ValidateIDNumber(idNumber) {
		return UpdateResult{}, fmt.Errorf("%w - %q", ErrInvalidIDNumber, idNumber)
	}
	scanner, err := record.NewUpdateScanner(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return UpdateResult{}, ErrNotFound
		}
		return UpdateResult{}, storageError("open", err)
	}

	rec, _, err := s.seek(scanner, idNumber)
	if err != nil {
		scanner.Close()
		return UpdateResult{}, err
	}
	// The record that matched ends at the current scan position
	offset := scanner.Offset() - record.Size

	before := fromRecord(rec)
	after, warnings := before.apply(patch)
	for _, warning := range warnings {
		s.logger.Debug("update field rejected, keeping previous value", "id_number", idNumber, "error", warning)
	}

	if err := scanner.Overwrite(offset, after.toRecord()); err != nil {
		scanner.Close()
		return UpdateResult{}, writeError("write", err)
	}
	if err := scanner.Close(); err != nil {
		return UpdateResult{}, storageError("close", err)
	}
	s.logger.Debug("person updated", "id_number", idNumber, "offset", offset, "path", s.path)
	return UpdateResult{Before: before, After: after, Warnings: warnings}, nil
}

// Delete removes the person with the given id number and returns it. The whole store is
// rewritten into a temporary file next to it without the matching record, then the original
// file is removed and the temporary file is renamed in its place. If no record matches, the
// store is left untouched and ErrNotFound is returned.
//
// If the rename fails after the original was removed, the returned error names the temporary
// file which still holds every remaining record
func (s *Store) Delete(idNumber string) (Person, error) {
	if !ValidateIDNumber(idNumber) {
		return Person{}, fmt.Errorf("%w - %q", ErrInvalidIDNumber, idNumber)
	}
	scanner, err := record.NewScanner(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Person{}, ErrNotFound
		}
		return Person{}, storageError("open", err)
	}

	tempPath := utils.GetTempFileName(s.path)
	writer, err := record.NewWriter(s.fs, tempPath)
	if err != nil {
		scanner.Close()
		return Person{}, storageError("create temp file", err)
	}

	removed, found, err := copyExcept(scanner, writer, idNumber)
	scanner.Close()
	if closeErr := writer.Close(); err == nil && closeErr != nil {
		err = storageError("close temp file", closeErr)
	}
	if err != nil || !found {
		if removeErr := s.fs.Remove(tempPath); removeErr != nil {
			s.logger.Warn("could not remove temp file", "path", tempPath, "error", removeErr)
		}
		if err != nil {
			return Person{}, err
		}
		return Person{}, ErrNotFound
	}

	if err := s.fs.Remove(s.path); err != nil {
		if removeErr := s.fs.Remove(tempPath); removeErr != nil {
			s.logger.Warn("could not remove temp file", "path", tempPath, "error", removeErr)
		}
		return Person{}, storageError("remove", err)
	}
	if err := s.fs.Rename(tempPath, s.path); err != nil {
		s.logger.Error("store file removed but temp file could not be renamed", "temp_path", tempPath, "path", s.path, "error", err)
		return Person{}, fmt.Errorf("%w: rename %s to %s, remaining records are kept in %s: %w", ErrStorage, tempPath, s.path, tempPath, err)
	}
	s.logger.Debug("person deleted", "id_number", idNumber, "path", s.path)
	return fromRecord(removed), nil
}

// copyExcept writes every record that does not match idNumber to writer. It returns the first
// matching record, and whether one was found
func copyExcept(scanner *record.Scanner, writer *record.Writer, idNumber string) (record.Record, bool, error) {
	var removed record.Record
	found := false
	for {
		rec, offset, err := scanner.Scan()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return removed, found, nil
			}
			return removed, found, scanError(offset, err)
		}
		if rec.IDNumber == idNumber {
			if !found {
				removed = rec
				found = true
			}
			continue
		}
		if _, err := writer.WriteRecord(&rec); err != nil {
			return removed, found, writeError("write temp file", err)
		}
	}
}

// seek scans forward until a record with the given id number is found, the first match wins.
// It returns the record and its offset, or ErrNotFound at the end of the file
func (s *Store) seek(scanner *record.Scanner, idNumber string) (record.Record, int64, error) {
	for {
		rec, offset, err := scanner.Scan()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return record.Record{}, -1, ErrNotFound
			}
			return record.Record{}, -1, scanError(offset, err)
		}
		if rec.IDNumber == idNumber {
			return rec, offset, nil
		}
	}
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// writeError classifies a failed record write. A record that can't be encoded is a rejected
// value, everything else comes from the file system
func writeError(op string, err error) error {
	switch {
	case errors.Is(err, record.ErrFieldTooLarge), errors.Is(err, record.ErrInvalidText):
		return fmt.Errorf("%w: %s: %w", ErrInvalidText, op, err)
	case errors.Is(err, record.ErrShortWrite):
		return fmt.Errorf("%w: %s: %w", ErrStorage, op, ErrShortWrite)
	}
	return storageError(op, err)
}

func scanError(offset int64, err error) error {
	if errors.Is(err, record.ErrTruncatedRecord) || errors.Is(err, record.ErrUnterminatedField) {
		return fmt.Errorf("%w: %w: record at offset %d: %w", ErrStorage, ErrCorruptStore, offset, err)
	}
	return storageError("read", err)
}
