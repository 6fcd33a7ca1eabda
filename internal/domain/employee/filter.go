package employee

// FieldKind selects the keystroke filter applied while a field is being typed.
type FieldKind int

const (
	KindText FieldKind = iota
	KindInteger
	KindDecimal
)

const backspace = '\b'

func (k FieldKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	}
	return "text"
}

func KindOf(f Field) FieldKind {
	switch f {
	case FieldID, FieldPhone:
		return KindInteger
	case FieldSalary:
		return KindDecimal
	}
	return KindText
}

// IsAllowedChar reports whether a keystroke may be accepted for a field of
// the given kind. It is advisory; Validate stays authoritative.
func IsAllowedChar(kind FieldKind, r rune) bool {
	switch kind {
	case KindInteger:
		return isDigit(r) || r == backspace
	case KindDecimal:
		return isDigit(r) || r == '.' || r == backspace
	}
	return true
}

// FilterInput replays s as a sequence of keystrokes and returns the text the
// field would hold plus the number of keystrokes that were refused. A decimal
// field keeps only its first decimal point.
func FilterInput(kind FieldKind, s string) (string, int) {
	out := make([]rune, 0, len(s))
	rejected := 0
	for _, r := range s {
		if !IsAllowedChar(kind, r) {
			rejected++
			continue
		}
		if r == backspace {
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		}
		if kind == KindDecimal && r == '.' && containsRune(out, '.') {
			rejected++
			continue
		}
		out = append(out, r)
	}
	return string(out), rejected
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func containsRune(rs []rune, target rune) bool {
	for _, r := range rs {
		if r == target {
			return true
		}
	}
	return false
}
