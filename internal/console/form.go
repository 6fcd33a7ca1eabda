package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"empform/internal/domain/employee"
)

var labels = map[employee.Field]string{
	employee.FieldID:        "ID",
	employee.FieldFirstName: "First name",
	employee.FieldLastName:  "Last name",
	employee.FieldAddress:   "Address",
	employee.FieldPhone:     "Phone",
	employee.FieldEmail:     "Email",
	employee.FieldSalary:    "Salary",
	employee.FieldPosition:  "Position",
	employee.FieldGender:    "Gender",
	employee.FieldHireDate:  "Hire date",
}

const helpText = `Commands:
  new     fill in and save a new employee
  table   show the registered employees
  help    show this message
  exit    leave the application
`

// Form is the terminal rendition of the employee entry form.
type Form struct {
	service   *employee.Service
	prompter  Prompter
	out       io.Writer
	outputDir string
	now       func() time.Time

	errColor  *color.Color
	okColor   *color.Color
	warnColor *color.Color
}

type FormOption func(*Form)

func WithFormClock(now func() time.Time) FormOption {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

func NewForm(service *employee.Service, prompter Prompter, out io.Writer, outputDir string, opts ...FormOption) *Form {
	f := &Form{
		service:   service,
		prompter:  prompter,
		out:       out,
		outputDir: outputDir,
		now:       time.Now,
		errColor:  color.New(color.FgRed, color.Bold),
		okColor:   color.New(color.FgGreen),
		warnColor: color.New(color.FgYellow),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run reads commands until the user confirms they want to leave.
func (f *Form) Run(ctx context.Context) error {
	fmt.Fprint(f.out, helpText)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := f.prompter.Prompt("empform> ")
		if errors.Is(err, io.EOF) || errors.Is(err, ErrAborted) {
			if f.confirmExit() {
				return nil
			}
			continue
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		f.prompter.AppendHistory(line)

		switch strings.ToLower(line) {
		case "new", "n":
			if err := f.Fill(ctx); err != nil {
				return err
			}
		case "table", "t":
			f.RenderTable()
		case "help", "h", "?":
			fmt.Fprint(f.out, helpText)
		case "exit", "quit", "q":
			if f.confirmExit() {
				return nil
			}
		default:
			f.warnColor.Fprintf(f.out, "unknown command %q, type help\n", line)
		}
	}
}

// Fill walks the fields, saves the entry and re-prompts from the first field
// that fails validation. Only unexpected prompt errors are returned.
func (f *Form) Fill(ctx context.Context) error {
	values := map[employee.Field]string{
		employee.FieldHireDate: f.now().Format(employee.DateLayout),
	}
	start := 0
	for {
		for i := start; i < len(employee.FormFields); i++ {
			field := employee.FormFields[i]
			value, err := f.ask(field, values[field])
			if errors.Is(err, ErrAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(f.out, "entry discarded")
				return nil
			}
			if err != nil {
				return err
			}
			values[field] = value
		}

		in, err := f.input(values)
		if err != nil {
			f.errColor.Fprintf(f.out, "%s: %v\n", labels[employee.FieldHireDate], err)
			start = indexOf(employee.FieldHireDate)
			continue
		}

		result, err := f.service.Save(ctx, in, destination{form: f})
		var ve *employee.ValidationError
		var we *employee.WriteError
		switch {
		case err == nil:
			f.okColor.Fprintf(f.out, "Employee registered.\nFile saved at: %s\n", result.Path)
			f.RenderTable()
			return nil
		case errors.As(err, &ve):
			f.errColor.Fprintf(f.out, "%s: %s\n", labels[ve.Field], ve.Message)
			start = indexOf(ve.Field)
		case errors.Is(err, employee.ErrCancelled), errors.As(err, &we):
			if we != nil {
				f.errColor.Fprintf(f.out, "Could not save the file: %v\n", we.Err)
			} else {
				fmt.Fprintln(f.out, "save cancelled")
			}
			if !f.confirm("Try saving again? (y/n) ", false) {
				fmt.Fprintln(f.out, "entry discarded")
				return nil
			}
			start = len(employee.FormFields)
		default:
			return err
		}
	}
}

// RenderTable prints the display table.
func (f *Form) RenderTable() {
	cells := f.service.Table().Cells()
	if len(cells) == 0 {
		fmt.Fprintln(f.out, "(no employees registered)")
		return
	}
	table := tablewriter.NewWriter(f.out)
	table.SetHeader(employee.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(cells)
	table.Render()
}

func (f *Form) ask(field employee.Field, current string) (string, error) {
	switch field {
	case employee.FieldPosition:
		return f.choose(field, f.service.Catalog().Positions, current)
	case employee.FieldGender:
		return f.choose(field, f.service.Catalog().Genders, current)
	}

	raw, err := f.prompter.PromptWithSuggestion(labels[field]+": ", current)
	if err != nil {
		return "", err
	}
	kind := employee.KindOf(field)
	value, rejected := employee.FilterInput(kind, raw)
	if rejected > 0 {
		f.warnColor.Fprintf(f.out, "ignored %d character(s) not allowed in %s\n", rejected, strings.ToLower(labels[field]))
	}
	return value, nil
}

// choose behaves like a drop-down list: the answer must be an option, its
// number, or blank for no selection.
func (f *Form) choose(field employee.Field, options []string, current string) (string, error) {
	var b strings.Builder
	for i, option := range options {
		fmt.Fprintf(&b, "  %d) %s\n", i+1, option)
	}
	fmt.Fprint(f.out, b.String())
	for {
		raw, err := f.prompter.PromptWithSuggestion(labels[field]+": ", current)
		if err != nil {
			return "", err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return "", nil
		}
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, option := range options {
			if strings.EqualFold(option, raw) {
				return option, nil
			}
		}
		f.warnColor.Fprintf(f.out, "%q is not one of the options\n", raw)
	}
}

func (f *Form) input(values map[employee.Field]string) (employee.Input, error) {
	hireDate, err := parseDate(values[employee.FieldHireDate], f.now)
	if err != nil {
		return employee.Input{}, err
	}
	return employee.Input{
		ID:        values[employee.FieldID],
		FirstName: values[employee.FieldFirstName],
		LastName:  values[employee.FieldLastName],
		Address:   values[employee.FieldAddress],
		Phone:     values[employee.FieldPhone],
		Email:     values[employee.FieldEmail],
		Salary:    values[employee.FieldSalary],
		Position:  values[employee.FieldPosition],
		Gender:    values[employee.FieldGender],
		HireDate:  hireDate,
	}, nil
}

// confirmExit treats end of input as yes so a closed terminal cannot loop forever.
func (f *Form) confirmExit() bool {
	return f.confirm("Are you sure you want to exit? (y/n) ", true)
}

// confirm asks a yes/no question; atEOF is the answer when input has ended.
func (f *Form) confirm(question string, atEOF bool) bool {
	answer, err := f.prompter.Prompt(question)
	if errors.Is(err, io.EOF) {
		return atEOF
	}
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "si", "sí":
		return true
	}
	return false
}

// destination is the save dialog: it proposes the suggested name inside the
// output directory and lets the user change it or cancel with "-". Choosing
// an existing file asks before replacing it.
type destination struct {
	form *Form
}

func (d destination) Resolve(ctx context.Context, suggested string) (employee.Target, error) {
	proposal := filepath.Join(d.form.outputDir, suggested)
	for {
		if err := ctx.Err(); err != nil {
			return employee.Target{}, err
		}
		answer, err := d.form.prompter.PromptWithSuggestion("Save as (- to cancel): ", proposal)
		if errors.Is(err, ErrAborted) || errors.Is(err, io.EOF) {
			return employee.Target{}, employee.ErrCancelled
		}
		if err != nil {
			return employee.Target{}, err
		}
		answer = strings.TrimSpace(answer)
		switch answer {
		case "-":
			return employee.Target{}, employee.ErrCancelled
		case "":
			answer = proposal
		}
		if info, err := os.Stat(answer); err == nil && info.IsDir() {
			answer = filepath.Join(answer, suggested)
		}
		if dir := filepath.Dir(answer); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return employee.Target{}, fmt.Errorf("create directory %s: %w", dir, err)
			}
		}

		if _, err := os.Stat(answer); err == nil {
			question := fmt.Sprintf("%s already exists. Overwrite? (y/n) ", filepath.Base(answer))
			if d.form.confirm(question, false) {
				return employee.Target{Path: answer, Replace: true}, nil
			}
			proposal = answer
			continue
		}
		return employee.Target{Path: answer}, nil
	}
}

func parseDate(value string, now func() time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now(), nil
	}
	for _, layout := range []string{employee.DateLayout, "2006-01-02"} {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a date (use dd/mm/yyyy)", value)
}

func indexOf(field employee.Field) int {
	for i, f := range employee.FormFields {
		if f == field {
			return i
		}
	}
	return 0
}
