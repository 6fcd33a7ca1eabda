package console

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"empform/internal/domain/employee"
	"empform/internal/platform/recordfile"
)

// keep accepts the suggested text, like pressing enter on a prefilled line.
const keep = "<keep>"

type scripted struct {
	answers []string
	prompts []string
}

func (s *scripted) next(prompt, suggestion string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if answer == keep {
		return suggestion, nil
	}
	return answer, nil
}

func (s *scripted) Prompt(prompt string) (string, error) { return s.next(prompt, "") }
func (s *scripted) PromptWithSuggestion(prompt, text string) (string, error) {
	return s.next(prompt, text)
}
func (s *scripted) AppendHistory(string) {}
func (s *scripted) Close() error         { return nil }

var frozen = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func newTestForm(t *testing.T, answers ...string) (*Form, *scripted, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	clock := func() time.Time { return frozen }
	svc := employee.NewService(employee.DefaultCatalog(), employee.NewTable(), recordfile.NewWriter(), employee.WithClock(clock))
	p := &scripted{answers: answers}
	var out bytes.Buffer
	return NewForm(svc, p, &out, dir, WithFormClock(clock)), p, &out, dir
}

func TestFormSavesEmployee(t *testing.T) {
	form, _, out, dir := newTestForm(t,
		"new",
		"12", "Ana", "Diaz", "", "", "", "",
		"2", "F", keep,
		keep,
		"exit", "y",
	)

	if err := form.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	path := filepath.Join(dir, "Employee_12_20260314_150926.txt")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected record file: %v\n%s", err, out.String())
	}
	if !strings.Contains(string(content), "Cargo               : Engineer\n") {
		t.Fatalf("unexpected content:\n%s", content)
	}
	if !strings.Contains(string(content), "Fecha de Ingreso    : 14/03/2026\n") {
		t.Fatalf("expected hire date to default to today:\n%s", content)
	}
	if !strings.Contains(out.String(), "File saved at: "+path) {
		t.Fatalf("expected success message, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Ana") || !strings.Contains(out.String(), "Hire Date") {
		t.Fatalf("expected rendered table, got:\n%s", out.String())
	}
	if form.service.Table().Len() != 1 {
		t.Fatalf("expected one row, got %d", form.service.Table().Len())
	}
}

func TestFormRepromptsFailingField(t *testing.T) {
	form, p, out, _ := newTestForm(t,
		"new",
		"abc", "Ana", "Diaz", "", "", "", "", "", "", keep,
		"7", keep, keep, keep, keep, keep, keep, "", keep, keep,
		"Engineer", keep, keep,
		keep,
		"exit", "y",
	)

	if err := form.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "ignored 3 character(s) not allowed in id") {
		t.Fatalf("expected keystroke filter notice, got:\n%s", text)
	}
	if !strings.Contains(text, "ID: "+employee.MsgID) {
		t.Fatalf("expected id error, got:\n%s", text)
	}
	if !strings.Contains(text, "Position: "+employee.MsgPosition) {
		t.Fatalf("expected position error, got:\n%s", text)
	}
	rows := form.service.Table().Rows()
	if len(rows) != 1 || rows[0].ID != "7" || rows[0].FirstName != "Ana" || rows[0].Position != "Engineer" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if len(p.answers) != 0 {
		t.Fatalf("expected every answer to be consumed, %d left", len(p.answers))
	}
}

func TestFormCancelledSave(t *testing.T) {
	form, _, out, dir := newTestForm(t,
		"new",
		"12", "Ana", "Diaz", "", "", "", "", "1", "", keep,
		"-", "n",
	)

	if err := form.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "save cancelled") {
		t.Fatalf("expected cancel notice, got:\n%s", out.String())
	}
	if form.service.Table().Len() != 0 {
		t.Fatal("expected no row after cancel")
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Fatal("expected no file after cancel")
	}
}

func TestFormRetriesAfterCancel(t *testing.T) {
	form, _, _, dir := newTestForm(t,
		"new",
		"12", "Ana", "Diaz", "", "", "", "", "1", "", keep,
		"-", "y", keep,
		"exit", "y",
	)

	if err := form.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if form.service.Table().Len() != 1 {
		t.Fatal("expected the retried save to succeed")
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 1 {
		t.Fatal("expected one file")
	}
}

func TestFormExitNeedsConfirmation(t *testing.T) {
	form, p, out, _ := newTestForm(t, "exit", "n", "table", "exit", "yes")

	if err := form.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "(no employees registered)") {
		t.Fatalf("expected empty table notice after declined exit, got:\n%s", out.String())
	}
	confirms := 0
	for _, prompt := range p.prompts {
		if strings.HasPrefix(prompt, "Are you sure") {
			confirms++
		}
	}
	if confirms != 2 {
		t.Fatalf("expected two confirmations, got %d", confirms)
	}
}

func TestFormSelectionRejectsUnknownOption(t *testing.T) {
	form, _, out, _ := newTestForm(t,
		"new",
		"12", "Ana", "Diaz", "", "", "", "", "Astronaut", "99", "Analyst", "", keep,
		keep,
	)

	if err := form.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `"Astronaut" is not one of the options`) {
		t.Fatalf("expected unknown option notice, got:\n%s", out.String())
	}
	rows := form.service.Table().Rows()
	if len(rows) != 1 || rows[0].Position != "Analyst" || rows[0].Gender != "" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestParseDate(t *testing.T) {
	now := func() time.Time { return frozen }
	got, err := parseDate("31/12/2024", now)
	if err != nil || got.Day() != 31 || got.Month() != time.December {
		t.Fatalf("unexpected date %v %v", got, err)
	}
	if got, _ := parseDate("", now); !got.Equal(frozen) {
		t.Fatal("expected blank date to be today")
	}
	if _, err := parseDate("12/31/2024", now); err == nil {
		t.Fatal("expected month 31 to fail")
	}
}

func TestFormAsksBeforeReplacingFile(t *testing.T) {
	form, p, _, dir := newTestForm(t)
	other := filepath.Join(dir, "luis.txt")
	p.answers = []string{
		"new", "12", "Ana", "Diaz", "", "", "", "", "1", "", keep, keep,
		"new", "12", "Luis", "Diaz", "", "", "", "", "1", "", keep, keep,
		"n", other,
		"exit", "y",
	}

	if err := form.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	asked := false
	for _, prompt := range p.prompts {
		if strings.HasSuffix(prompt, "already exists. Overwrite? (y/n) ") {
			asked = true
		}
	}
	if !asked {
		t.Fatalf("expected an overwrite question, prompts: %q", p.prompts)
	}
	first, err := os.ReadFile(filepath.Join(dir, "Employee_12_20260314_150926.txt"))
	if err != nil || !strings.Contains(string(first), "Nombre              : Ana\n") {
		t.Fatalf("expected first record file to survive: %v\n%s", err, first)
	}
	second, err := os.ReadFile(other)
	if err != nil || !strings.Contains(string(second), "Nombre              : Luis\n") {
		t.Fatalf("expected second record under the new name: %v\n%s", err, second)
	}
	if form.service.Table().Len() != 2 {
		t.Fatalf("expected two rows, got %d", form.service.Table().Len())
	}
}

func TestFormReplacesFileWhenConfirmed(t *testing.T) {
	form, p, _, dir := newTestForm(t,
		"new", "12", "Ana", "Diaz", "", "", "", "", "1", "", keep, keep,
		"new", "12", "Luis", "Diaz", "", "", "", "", "1", "", keep, keep,
		"y",
		"exit", "y",
	)

	if err := form.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected one file, got %d", len(entries))
	}
	content, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if !strings.Contains(string(content), "Nombre              : Luis\n") {
		t.Fatalf("expected replaced content:\n%s", content)
	}
	if len(p.answers) != 0 {
		t.Fatalf("expected every answer to be consumed, %d left", len(p.answers))
	}
}

func TestFormDoesNotRetryAfterInputEnds(t *testing.T) {
	form, _, out, _ := newTestForm(t,
		"new", "12", "Ana", "Diaz", "", "", "", "", "1", "", keep,
	)

	if err := form.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "entry discarded") {
		t.Fatalf("expected the entry to be discarded, got:\n%s", out.String())
	}
	if form.service.Table().Len() != 0 {
		t.Fatal("expected no row")
	}
}
