package employee

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestTableAppendOnly(t *testing.T) {
	table := NewTable()
	if table.Len() != 0 {
		t.Fatal("expected empty table")
	}
	row := table.Append(Record{ID: "1", FirstName: "Ana"})
	if row != 1 {
		t.Fatalf("expected row 1, got %d", row)
	}
	table.Append(Record{ID: "2", FirstName: "Luis"})

	rows := table.Rows()
	rows[0].FirstName = "changed"
	got, err := table.Get(1)
	if err != nil || got.FirstName != "Ana" {
		t.Fatalf("expected rows copy to be detached, got %+v %v", got, err)
	}
	if _, err := table.Get(3); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
	if _, err := table.Get(0); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound for row 0, got %v", err)
	}
}

func TestRowMatchesColumns(t *testing.T) {
	rec := Record{ID: "9", Salary: "10", HireDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)}
	cells := Row(rec)
	if len(cells) != len(Columns) {
		t.Fatalf("expected %d cells, got %d", len(Columns), len(cells))
	}
	if cells[9] != "31/01/2024" {
		t.Fatalf("expected dd/mm/yyyy hire date, got %q", cells[9])
	}
}

func TestTableConcurrentAppend(t *testing.T) {
	table := NewTable()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table.Append(Record{ID: "1"})
			_ = table.Cells()
		}()
	}
	wg.Wait()
	if table.Len() != 50 {
		t.Fatalf("expected 50 rows, got %d", table.Len())
	}
}
