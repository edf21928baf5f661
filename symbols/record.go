// seehuhn.de/go/flipcode - digit codes that read upside down
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package symbols

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"unicode/utf8"
)

var (
	errEmptyCode     = errors.New("empty code")
	errCodeNotString = errors.New("code must be a JSON string")
)

// InvalidRecordError indicates that a symbol set record could not be
// decoded, or that required fields are missing.
type InvalidRecordError struct {
	Field string
	Err   error
}

func (err *InvalidRecordError) Error() string {
	msg := "invalid symbol set record"
	if err.Field != "" {
		msg += " (" + err.Field + ")"
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *InvalidRecordError) Unwrap() error {
	return err.Err
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Only JSON strings are accepted.
func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return errCodeNotString
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	code, err := NewCode(s)
	if err != nil {
		return err
	}
	*c = code
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
func (c Code) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.s)
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "available":
		*s = Available
	case "coming_soon":
		*s = ComingSoon
	default:
		return fmt.Errorf("unknown status %q", name)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type record struct {
	GlyphSet    string                 `json:"glyphSet"`
	DisplayName string                 `json:"displayName"`
	Status      *Status                `json:"status"`
	Letters     map[string]letterEntry `json:"letters"`
}

type letterEntry struct {
	Code      Code   `json:"code"`
	GlyphFile string `json:"glyphFile"`
}

// Decode reads a symbol set record.  Records which are syntactically
// valid JSON but lack required fields are rejected the same way as
// unparseable data.
func Decode(data []byte) (*Set, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &InvalidRecordError{Err: err}
	}

	switch {
	case rec.GlyphSet == "":
		return nil, &InvalidRecordError{Field: "glyphSet", Err: errors.New("missing")}
	case rec.DisplayName == "":
		return nil, &InvalidRecordError{Field: "displayName", Err: errors.New("missing")}
	case rec.Status == nil:
		return nil, &InvalidRecordError{Field: "status", Err: errors.New("missing")}
	case rec.Letters == nil:
		return nil, &InvalidRecordError{Field: "letters", Err: errors.New("missing")}
	}

	set := &Set{
		ID:          rec.GlyphSet,
		DisplayName: rec.DisplayName,
		Status:      *rec.Status,
		Symbols:     make(map[rune]Entry, len(rec.Letters)),
	}
	for key, e := range rec.Letters {
		field := "letters." + key
		r, size := utf8.DecodeRuneInString(key)
		if size != len(key) || r < 'a' || r > 'z' {
			return nil, &InvalidRecordError{Field: field, Err: errors.New("key is not a lowercase letter")}
		}
		if e.Code.IsZero() {
			return nil, &InvalidRecordError{Field: field + ".code", Err: errEmptyCode}
		}
		if e.GlyphFile == "" || !fs.ValidPath(e.GlyphFile) {
			return nil, &InvalidRecordError{Field: field + ".glyphFile", Err: fmt.Errorf("invalid file name %q", e.GlyphFile)}
		}
		set.Symbols[r] = Entry{Code: e.Code, GlyphRef: e.GlyphFile}
	}
	return set, nil
}
