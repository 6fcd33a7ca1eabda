package employee

import "sync"

// Columns are the headers of the display table.
var Columns = []string{
	"ID",
	"Name",
	"Last Name",
	"Address",
	"Phone",
	"Email",
	"Salary",
	"Position",
	"Gender",
	"Hire Date",
}

// Table is the append-only list of accepted records shown to the user.
type Table struct {
	mu   sync.RWMutex
	rows []Record
}

func NewTable() *Table {
	return &Table{rows: make([]Record, 0, 16)}
}

// Append adds rec and returns its 1-based row number.
func (t *Table) Append(rec Record) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, rec)
	return len(t.rows)
}

func (t *Table) Rows() []Record {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Record, len(t.rows))
	copy(out, t.rows)
	return out
}

// Get returns the record at a 1-based row number.
func (t *Table) Get(row int) (Record, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if row < 1 || row > len(t.rows) {
		return Record{}, ErrRowNotFound
	}
	return t.rows[row-1], nil
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Row renders rec as cells matching Columns.
func Row(rec Record) []string {
	return []string{
		rec.ID,
		rec.FirstName,
		rec.LastName,
		rec.Address,
		rec.Phone,
		rec.Email,
		rec.Salary,
		rec.Position,
		rec.Gender,
		rec.HireDateText(),
	}
}

// Cells renders every row of the table.
func (t *Table) Cells() [][]string {
	rows := t.Rows()
	out := make([][]string, 0, len(rows))
	for _, rec := range rows {
		out = append(out, Row(rec))
	}
	return out
}
