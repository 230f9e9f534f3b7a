package record

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/spf13/afero"
)

const readerBufferSize = 64 * Size

// Scanner sequentially reads records from the given file. It internally uses
// a buffered reader, the file is only read front to back.
//
// A Scanner opened with NewUpdateScanner can also overwrite the record it last returned, see Overwrite
type Scanner struct {
	file     afero.File
	offset   int64
	reader   *bufio.Reader
	writable bool

	buf [Size]byte
}

// NewScanner opens the file at path for reading. If the file does not exist, the returned error
// satisfies errors.Is(err, os.ErrNotExist)
func NewScanner(fs afero.Fs, path string) (*Scanner, error) {
	return openScanner(fs, path, os.O_RDONLY)
}

// NewUpdateScanner opens the file at path for reading and writing, it never creates the file
func NewUpdateScanner(fs afero.Fs, path string) (*Scanner, error) {
	return openScanner(fs, path, os.O_RDWR)
}

func openScanner(fs afero.Fs, path string, flag int) (*Scanner, error) {
	file, err := fs.OpenFile(path, flag, 0666)
	if err != nil {
		return nil, err
	}
	return &Scanner{
		file:     file,
		reader:   bufio.NewReaderSize(file, readerBufferSize),
		writable: flag&os.O_RDWR != 0,
	}, nil
}

// Scan returns the next record and the offset of its first byte from the start of the file.
// At the end of the file io.EOF is returned. If the file ends in the middle of a record,
// ErrTruncatedRecord is returned
func (scanner *Scanner) Scan() (Record, int64, error) {
	recordOffset := scanner.offset
	n, err := io.ReadFull(scanner.reader, scanner.buf[:])
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Record{}, recordOffset, ErrTruncatedRecord
		}
		return Record{}, recordOffset, err
	}
	scanner.offset += int64(n)
	rec, err := Decode(scanner.buf[:])
	if err != nil {
		return Record{}, recordOffset, err
	}
	return rec, recordOffset, nil
}

// Offset returns the number of bytes consumed so far, i.e. the start of the next record
func (scanner *Scanner) Offset() int64 {
	return scanner.offset
}

// Overwrite seeks to offset and writes exactly one encoded record there. The scanner must have been
// created with NewUpdateScanner. Scan must not be called after Overwrite since the read buffer is stale
func (scanner *Scanner) Overwrite(offset int64, r *Record) error {
	if !scanner.writable {
		return os.ErrPermission
	}
	if err := Encode(scanner.buf[:], r); err != nil {
		return err
	}
	if _, err := scanner.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	n, err := scanner.file.Write(scanner.buf[:])
	if err != nil {
		return err
	}
	if n != Size {
		return ErrShortWrite
	}
	return nil
}

// Close closes the underlying file, changes made by Overwrite are synced first
func (scanner *Scanner) Close() error {
	if scanner.writable {
		if err := scanner.file.Sync(); err != nil {
			scanner.file.Close()
			return err
		}
	}
	return scanner.file.Close()
}
