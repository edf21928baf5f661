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

package resolve

import (
	"errors"

	"seehuhn.de/go/flipcode/encode"
	"seehuhn.de/go/flipcode/glyph"
	"seehuhn.de/go/flipcode/symbols"
)

// ErrNoActiveSet is returned by [Session.Encode] before a symbol set has
// been selected.
var ErrNoActiveSet = errors.New("no symbol set selected")

// Session ties the active symbol set to a glyph cache.
type Session struct {
	res   *Resolver
	cache *Cache

	// active is protected by cache.mu, so that switching sets and
	// clearing the cache happen in one step.
	active *symbols.Set
}

// NewSession returns a session without an active symbol set.
func NewSession(r *Resolver) *Session {
	return &Session{
		res:   r,
		cache: NewCache(r),
	}
}

// Select makes the symbol set setID active and empties the glyph cache.
// If the set cannot be loaded, the previous selection stays in effect and
// a *ConfigurationError is returned.
func (s *Session) Select(setID string) error {
	set, err := s.res.Set(setID)
	if err != nil {
		return err
	}

	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	s.active = set
	s.cache.reset()
	return nil
}

// Active returns the active symbol set, or nil if none was selected.
func (s *Session) Active() *symbols.Set {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	return s.active
}

// Cache returns the glyph cache of the session.
func (s *Session) Cache() *Cache {
	return s.cache
}

// Encode validates raw and encodes it using the active symbol set.
// Blank input gives an empty result.
func (s *Session) Encode(raw string) ([]encode.Element, error) {
	if err := encode.Validate(raw); err != nil {
		return nil, err
	}
	if encode.IsBlank(raw) {
		return nil, nil
	}
	set := s.Active()
	if set == nil {
		return nil, ErrNoActiveSet
	}
	return encode.Encode(raw, set)
}

// Glyphs returns the glyph records for an encoded phrase.  The result has
// one entry per element, and the entries for word breaks are nil.
func (s *Session) Glyphs(elems []encode.Element) []*glyph.Record {
	set := s.Active()
	res := make([]*glyph.Record, len(elems))
	if set == nil {
		return res
	}
	for i, e := range elems {
		if e.Kind != encode.Letter {
			continue
		}
		res[i], _ = s.cache.Glyph(set, e.Char)
	}
	return res
}
