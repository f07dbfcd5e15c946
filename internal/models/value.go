package models

import (
	"encoding/json"
	"strconv"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	// KindMissing marks an empty or placeholder cell ("", "-", "NA")
	KindMissing ValueKind = iota
	// KindNumber is a plain numeric cell
	KindNumber
	// KindPercent is a percentage cell, already divided by 100
	KindPercent
	// KindText is a cell that could not be parsed as a number
	KindText
)

// String returns the variant name
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindPercent:
		return "percent"
	case KindText:
		return "text"
	default:
		return "missing"
	}
}

// Value is a normalized table cell. The zero value is Missing.
type Value struct {
	kind ValueKind
	num  float64
	text string
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Percent returns a percentage Value. f must already be a fraction (12% -> 0.12).
func Percent(f float64) Value { return Value{kind: KindPercent, num: f} }

// Text returns a textual Value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Missing returns the empty Value.
func Missing() Value { return Value{} }

func (v Value) Kind() ValueKind   { return v.kind }
func (v Value) IsMissing() bool   { return v.kind == KindMissing }
func (v Value) IsNumeric() bool   { return v.kind == KindNumber || v.kind == KindPercent }
func (v Value) TextValue() string { return v.text }

// Float returns the numeric payload of Number and Percent values.
func (v Value) Float() (float64, bool) {
	if !v.IsNumeric() {
		return 0, false
	}
	return v.num, true
}

// String renders the display form of the value. Normalizing the display
// form again yields an equal Value.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindPercent:
		// 12 significant digits hides the error introduced by the /100 round trip
		return strconv.FormatFloat(v.num*100, 'g', 12, 64) + "%"
	case KindText:
		return v.text
	default:
		return ""
	}
}

// MarshalJSON encodes Number and Percent as JSON numbers, Text as a string
// and Missing as null. Text uses the standard encoding, so &, < and > are
// written as \u0026, \u003c and \u003e; decoders read back the same text.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber, KindPercent:
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}
