package recordfile

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"empform/internal/domain/employee"
)

const (
	ruleWidth  = 70
	labelWidth = 20
	titleWidth = 42
	title      = "REGISTRO DE EMPLEADO"

	stampLayout    = "02/01/2006 15:04:05"
	fileNameLayout = "20060102_150405"
)

var rule = strings.Repeat("=", ruleWidth)

// Line is one labelled value of the record block.
type Line struct {
	Label string
	Value string
}

// Lines returns the labelled values in file order. The salary value carries
// its currency sign even when empty.
func Lines(rec employee.Record) []Line {
	return []Line{
		{"ID", rec.ID},
		{"Nombre", rec.FirstName},
		{"Apellidos", rec.LastName},
		{"Dirección", rec.Address},
		{"Teléfono", rec.Phone},
		{"Email", rec.Email},
		{"Salario", "$" + rec.Salary},
		{"Cargo", rec.Position},
		{"Género", rec.Gender},
		{"Fecha de Ingreso", rec.HireDateText()},
	}
}

// Format renders rec as the registration block, always 18 lines. The stamp
// comes from rec.RegisteredAt so identical records format identically.
func Format(rec employee.Record) []byte {
	var buf bytes.Buffer
	writeLine(&buf, rule)
	writeLine(&buf, fmt.Sprintf("%*s", titleWidth, title))
	writeLine(&buf, rule)
	writeLine(&buf, "")
	for _, l := range Lines(rec) {
		// fmt pads by runes, so accented labels still line up.
		writeLine(&buf, fmt.Sprintf("%-*s: %s", labelWidth, l.Label, employee.SingleLine(l.Value)))
	}
	writeLine(&buf, "")
	writeLine(&buf, rule)
	writeLine(&buf, "Registrado: "+Stamp(rec.RegisteredAt))
	writeLine(&buf, rule)
	return buf.Bytes()
}

func Stamp(t time.Time) string {
	return t.Format(stampLayout)
}

func FileName(id string, at time.Time) string {
	return fmt.Sprintf("Employee_%s_%s.txt", id, at.Format(fileNameLayout))
}

func writeLine(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte('\n')
}
