package recordfile

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"empform/internal/domain/employee"
)

// Writer persists one record per file.
type Writer struct {
	Perm os.FileMode
}

func NewWriter() *Writer {
	return &Writer{Perm: 0o644}
}

func (w *Writer) FileName(rec employee.Record) string {
	return FileName(rec.ID, rec.RegisteredAt)
}

// Write creates target.Path and writes the formatted record. An existing file
// is only truncated when target.Replace is set; otherwise the write fails with
// employee.ErrExists. The file handle is closed on every return path and the
// returned path is absolute.
func (w *Writer) Write(rec employee.Record, target employee.Target) (written string, err error) {
	path := target.Path
	if path == "" {
		return "", &employee.WriteError{Err: errors.New("empty destination path")}
	}
	resolved, absErr := filepath.Abs(path)
	if absErr != nil {
		resolved = filepath.Clean(path)
	}

	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if target.Replace {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(resolved, flags, perm)
	if errors.Is(err, fs.ErrExist) {
		return "", &employee.WriteError{Path: resolved, Err: employee.ErrExists}
	}
	if err != nil {
		return "", &employee.WriteError{Path: resolved, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			written = ""
			err = &employee.WriteError{Path: resolved, Err: cerr}
		}
	}()

	bw := bufio.NewWriter(f)
	if _, err := bw.Write(Format(rec)); err != nil {
		return "", &employee.WriteError{Path: resolved, Err: err}
	}
	if err := bw.Flush(); err != nil {
		return "", &employee.WriteError{Path: resolved, Err: err}
	}
	return resolved, nil
}
