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

// Package resolve locates symbol sets and glyph documents.
//
// Files are looked up in an override store first, which holds art
// installed at run time, and then in the packaged store.  Glyphs which
// are found in neither store are synthesized, so that glyph lookups never
// fail.  Symbol set records have no such fallback.
package resolve

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/flipcode/glyph"
	"seehuhn.de/go/flipcode/symbols"
)

// Tier identifies where a glyph definition was found.
type Tier int

// These are the resolution tiers, in lookup order.
const (
	Override Tier = iota
	Packaged
	Synthetic
)

func (t Tier) String() string {
	switch t {
	case Override:
		return "override"
	case Packaged:
		return "packaged"
	case Synthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// Definition is the raw text of a glyph document.
type Definition struct {
	Data   []byte
	Source Tier
}

// ConfigurationMessage is the text of every [ConfigurationError].
const ConfigurationMessage = "The selected symbol set could not be loaded. " +
	"Its configuration is missing or damaged."

// ConfigurationError indicates that no usable record was found for a
// symbol set.
type ConfigurationError struct {
	SetID string
	Err   error // the last problem encountered, if any
}

// Error returns [ConfigurationMessage], independent of the cause.
func (err *ConfigurationError) Error() string {
	return ConfigurationMessage
}

func (err *ConfigurationError) Unwrap() error {
	return err.Err
}

// Resolver looks up files in an override store and a packaged store.
// Either store may be nil.
type Resolver struct {
	Override Store
	Packaged Store

	// Log receives diagnostic messages.
	// If Log is nil, the logrus standard logger is used.
	Log logrus.FieldLogger
}

func (r *Resolver) log() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

type tierStore struct {
	tier  Tier
	store Store
}

// stores returns the real tiers in lookup order.
func (r *Resolver) stores() []tierStore {
	return []tierStore{
		{Override, r.Override},
		{Packaged, r.Packaged},
	}
}

// read returns the contents of a file in one tier.  The second return
// value is false if the tier does not provide the file.  Storage problems
// other than missing files are logged.
func (r *Resolver) read(ts tierStore, setID, name string) ([]byte, bool) {
	if ts.store == nil {
		return nil, false
	}
	data, err := ts.store.ReadFile(setID, name)
	if err != nil {
		log := r.log().WithFields(logrus.Fields{
			"set":  setID,
			"file": name,
			"tier": ts.tier,
		})
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("file not found")
		} else {
			log.WithError(err).Warn("cannot read file")
		}
		return nil, false
	}
	return data, true
}

// Glyph returns the document for the glyph file ref of a symbol set.
// If no store has the file, a placeholder showing the letter and its
// code is synthesized.  Glyph never fails.
func (r *Resolver) Glyph(ref, setID string, letter rune, code symbols.Code) Definition {
	for _, ts := range r.stores() {
		if data, ok := r.read(ts, setID, ref); ok && len(data) > 0 {
			return Definition{Data: data, Source: ts.tier}
		}
	}
	r.log().WithFields(logrus.Fields{
		"set":    setID,
		"file":   ref,
		"letter": string(letter),
	}).Debug("synthesizing glyph")
	return Definition{Data: glyph.Synthesize(letter, code), Source: Synthetic}
}

// Set loads the record of a symbol set.  A record which cannot be decoded,
// or which names a set other than setID, is treated as absent, and the
// next tier is tried.  If no tier yields a
// valid record, a *ConfigurationError is returned.
func (r *Resolver) Set(setID string) (*symbols.Set, error) {
	var lastErr error
	for _, ts := range r.stores() {
		data, ok := r.read(ts, setID, ConfigFile)
		if !ok {
			continue
		}
		set, err := symbols.Decode(data)
		if err != nil {
			r.log().WithFields(logrus.Fields{
				"set":  setID,
				"tier": ts.tier,
			}).WithError(err).Warn("invalid symbol set record")
			lastErr = err
			continue
		}
		if set.ID != setID {
			r.log().WithFields(logrus.Fields{
				"set":      setID,
				"tier":     ts.tier,
				"glyphSet": set.ID,
			}).Warn("symbol set record names a different set")
			lastErr = &symbols.InvalidRecordError{
				Field: "glyphSet",
				Err:   fmt.Errorf("record for %q found in directory %q", set.ID, setID),
			}
			continue
		}
		return set, nil
	}
	if lastErr == nil {
		lastErr = fs.ErrNotExist
	}
	return nil, &ConfigurationError{SetID: setID, Err: lastErr}
}

// SetIDs implements the [Lister] interface.  It reports the union of the
// sets in all stores which implement Lister.
func (r *Resolver) SetIDs() ([]string, error) {
	var u union
	for _, ts := range r.stores() {
		if l, ok := ts.store.(Lister); ok {
			u = append(u, l)
		}
	}
	return u.SetIDs()
}
