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
	"sync"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/flipcode/glyph"
	"seehuhn.de/go/flipcode/symbols"
)

// cacheKey identifies a cache entry.  Placeholders depend on the letter
// and carry it in the key; records parsed from a glyph file have letter 0.
type cacheKey struct {
	setID  string
	ref    string
	letter rune
}

// Cache holds parsed glyph records, keyed by symbol set and glyph file.
// Letters which share a glyph file share the cache entry.  Placeholders
// are never shared, since they show the letter and its code.
//
// All methods may be called concurrently.  Lookups, preloading and
// invalidation are serialized, so that no lookup observes a partially
// cleared cache.
type Cache struct {
	res *Resolver

	mu      sync.Mutex
	entries map[cacheKey]*glyph.Record
}

// NewCache returns an empty cache which resolves glyphs using r.
func NewCache(r *Resolver) *Cache {
	return &Cache{
		res:     r,
		entries: make(map[cacheKey]*glyph.Record),
	}
}

// Glyph returns the record for a letter of set.  The second return value
// is false only if the letter is not part of the set.  If the glyph
// document cannot be parsed, the synthesized placeholder is used instead.
func (c *Cache) Glyph(set *symbols.Set, letter rune) (*glyph.Record, bool) {
	e, ok := set.Lookup(letter)
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(set.ID, letter, e), true
}

// Preload resolves and parses the glyphs of all letters in set.
func (c *Cache) Preload(set *symbols.Set) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, letter := range set.Letters() {
		c.get(set.ID, letter, set.Symbols[letter])
	}
}

// Invalidate removes all entries.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// get returns the record for one entry, resolving and parsing it if
// needed.  The caller must hold c.mu.
func (c *Cache) get(setID string, letter rune, e symbols.Entry) *glyph.Record {
	key := cacheKey{setID: setID, ref: e.GlyphRef}
	if rec, ok := c.entries[key]; ok {
		return rec
	}
	own := cacheKey{setID: setID, ref: e.GlyphRef, letter: letter}
	if rec, ok := c.entries[own]; ok {
		return rec
	}

	def := c.res.Glyph(e.GlyphRef, setID, letter, e.Code)
	rec, ok := glyph.ParseDocument(def.Data)
	if !ok {
		c.res.log().WithFields(logrus.Fields{
			"set":  setID,
			"file": e.GlyphRef,
			"tier": def.Source,
		}).Warn("invalid glyph document, using placeholder")
		rec, _ = glyph.ParseDocument(glyph.Synthesize(letter, e.Code))
		key = own
	} else if def.Source == Synthetic {
		key = own
	}
	c.entries[key] = rec

	c.res.log().WithFields(logrus.Fields{
		"set":  setID,
		"file": e.GlyphRef,
		"tier": def.Source,
	}).Debug("glyph cached")
	return rec
}

// reset removes all entries.  The caller must hold c.mu.
func (c *Cache) reset() {
	n := len(c.entries)
	clear(c.entries)
	c.res.log().WithField("entries", n).Debug("glyph cache invalidated")
}
