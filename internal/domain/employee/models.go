package employee

import (
	"strings"
	"time"
	"unicode"
)

type Field string

const (
	FieldID        Field = "id"
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldAddress   Field = "address"
	FieldPhone     Field = "phone"
	FieldEmail     Field = "email"
	FieldSalary    Field = "salary"
	FieldPosition  Field = "position"
	FieldGender    Field = "gender"
	FieldHireDate  Field = "hireDate"
)

// FormFields lists the fields in the order the form presents them.
var FormFields = []Field{
	FieldID,
	FieldFirstName,
	FieldLastName,
	FieldAddress,
	FieldPhone,
	FieldEmail,
	FieldSalary,
	FieldPosition,
	FieldGender,
	FieldHireDate,
}

// DateLayout is the day/month/year layout used wherever a hire date is shown.
const DateLayout = "02/01/2006"

// Input is the raw form state captured once per save action.
type Input struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Salary    string    `json:"salary"`
	Position  string    `json:"position"`
	Gender    string    `json:"gender"`
	HireDate  time.Time `json:"hireDate"`
}

// Value returns the raw text held for a field. Hire date is rendered with DateLayout.
func (in Input) Value(f Field) string {
	switch f {
	case FieldID:
		return in.ID
	case FieldFirstName:
		return in.FirstName
	case FieldLastName:
		return in.LastName
	case FieldAddress:
		return in.Address
	case FieldPhone:
		return in.Phone
	case FieldEmail:
		return in.Email
	case FieldSalary:
		return in.Salary
	case FieldPosition:
		return in.Position
	case FieldGender:
		return in.Gender
	case FieldHireDate:
		if in.HireDate.IsZero() {
			return ""
		}
		return in.HireDate.Format(DateLayout)
	}
	return ""
}

// Record is an accepted employee entry. It is never modified after creation.
type Record struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Salary       string    `json:"salary"`
	Position     string    `json:"position"`
	Gender       string    `json:"gender"`
	HireDate     time.Time `json:"hireDate"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// NewRecord cleans every text field of in with SingleLine. It does not validate.
func NewRecord(in Input) Record {
	return Record{
		ID:        SingleLine(in.ID),
		FirstName: SingleLine(in.FirstName),
		LastName:  SingleLine(in.LastName),
		Address:   SingleLine(in.Address),
		Phone:     SingleLine(in.Phone),
		Email:     SingleLine(in.Email),
		Salary:    SingleLine(in.Salary),
		Position:  SingleLine(in.Position),
		Gender:    SingleLine(in.Gender),
		HireDate:  in.HireDate,
	}
}

// SingleLine replaces control characters (line breaks, tabs, NUL) with
// spaces and trims the result, so a value always fits on one line of the
// record file.
func SingleLine(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == '\u2028' || r == '\u2029' {
			return ' '
		}
		return r
	}, s))
}

func (r Record) HireDateText() string {
	if r.HireDate.IsZero() {
		return ""
	}
	return r.HireDate.Format(DateLayout)
}
