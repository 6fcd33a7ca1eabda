package employee

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	OutcomeSaved       = "saved"
	OutcomeInvalid     = "invalid"
	OutcomeCancelled   = "cancelled"
	OutcomeWriteFailed = "write_failed"
)

// RecordWriter renders a record to a file. Write must fail with ErrExists
// when the target path is taken and the target does not allow replacing it.
type RecordWriter interface {
	FileName(rec Record) string
	Write(rec Record, target Target) (string, error)
}

// Opener shows a saved file to the user. Failures are never reported.
type Opener interface {
	Open(path string) error
}

type NoopOpener struct{}

func (NoopOpener) Open(string) error { return nil }

type Observer interface {
	ObserveSave(outcome string)
	ObserveValidationFailure(field string)
}

type noopObserver struct{}

func (noopObserver) ObserveSave(string)              {}
func (noopObserver) ObserveValidationFailure(string) {}

type SaveResult struct {
	Record Record `json:"record"`
	Row    int    `json:"row"`
	Path   string `json:"path"`
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithOpener(o Opener) Option {
	return func(s *Service) {
		if o != nil {
			s.opener = o
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

type Service struct {
	catalog  Catalog
	table    *Table
	writer   RecordWriter
	opener   Opener
	observer Observer
	now      func() time.Time
}

func NewService(catalog Catalog, table *Table, writer RecordWriter, opts ...Option) *Service {
	s := &Service{
		catalog:  catalog,
		table:    table,
		writer:   writer,
		opener:   NoopOpener{},
		observer: noopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Catalog() Catalog {
	return s.catalog
}

func (s *Service) Table() *Table {
	return s.table
}

func (s *Service) Validate(in Input) *FieldError {
	return Validate(in, s.catalog)
}

// Save validates in, writes the record file at the path chosen by dest and
// only then appends the record to the table.
func (s *Service) Save(ctx context.Context, in Input, dest Destination) (SaveResult, error) {
	if fe := s.Validate(in); fe != nil {
		s.observer.ObserveSave(OutcomeInvalid)
		s.observer.ObserveValidationFailure(string(fe.Field))
		return SaveResult{}, &ValidationError{FieldError: *fe}
	}

	rec := NewRecord(in)
	if position, ok := s.catalog.Position(rec.Position); ok {
		rec.Position = position
	}
	if gender, ok := s.catalog.Gender(rec.Gender); ok {
		rec.Gender = gender
	}
	now := s.now()
	if rec.HireDate.IsZero() {
		rec.HireDate = now
	}
	rec.RegisteredAt = now

	target, err := dest.Resolve(ctx, s.writer.FileName(rec))
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			s.observer.ObserveSave(OutcomeCancelled)
			return SaveResult{}, ErrCancelled
		}
		s.observer.ObserveSave(OutcomeWriteFailed)
		return SaveResult{}, &WriteError{Err: err}
	}

	written, err := s.writer.Write(rec, target)
	if err != nil {
		s.observer.ObserveSave(OutcomeWriteFailed)
		var we *WriteError
		if errors.As(err, &we) {
			return SaveResult{}, we
		}
		return SaveResult{}, &WriteError{Path: target.Path, Err: err}
	}

	row := s.table.Append(rec)
	s.observer.ObserveSave(OutcomeSaved)

	if err := s.opener.Open(written); err != nil {
		slog.Debug("open saved record failed", "path", written, "err", err)
	}

	return SaveResult{Record: rec, Row: row, Path: written}, nil
}
