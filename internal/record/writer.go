package record

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// Writer appends fixed size records to the end of a file. There are no locks in this implementation, so it's
// unsafe to call Writer methods concurrently
type Writer struct {
	file afero.File
	// Internal buffer used to hold the encoded record
	buf        [Size]byte
	currentPos int64
}

// NewWriter creates a new Record Writer that opens a file at the specified path for appending records.
// The file is created if it does not exist
func NewWriter(fs afero.Fs, path string) (*Writer, error) {
	file, err := fs.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, err
	}

	// Seek to end to find the size of the file (position for the next record)
	pos, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &Writer{
		file:       file,
		currentPos: pos,
	}, nil
}

// WriteRecord encodes r and appends it to the file. It returns the offset of the record, measured
// from the start of the file. If fewer than Size bytes were written, ErrShortWrite is returned
func (w *Writer) WriteRecord(r *Record) (int64, error) {
	if err := Encode(w.buf[:], r); err != nil {
		return 0, err
	}
	start := w.currentPos
	n, err := w.file.Write(w.buf[:])
	w.currentPos += int64(n)
	if err != nil {
		return start, err
	}
	if n != Size {
		return start, ErrShortWrite
	}
	return start, nil
}

// Offset returns the position at which the next record will be written
func (w *Writer) Offset() int64 {
	return w.currentPos
}

// Close closes the underlying file, it also syncs the changes to the disk
func (w *Writer) Close() error {
	if err := w.file.Sync(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
