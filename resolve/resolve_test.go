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
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"seehuhn.de/go/flipcode/encode"
	"seehuhn.de/go/flipcode/glyph"
	"seehuhn.de/go/flipcode/symbols"
)

const calcRecord = `{
	"glyphSet": "calc",
	"displayName": "Calculator",
	"status": "available",
	"letters": {
		"h": {"code": "4", "glyphFile": "h.svg"},
		"i": {"code": "1", "glyphFile": "i.svg"},
		"o": {"code": "0", "glyphFile": "o.svg"},
		"u": {"code": "0", "glyphFile": "o.svg"},
		"p": {"code": "01", "glyphFile": "p.svg"},
		"x": {"code": "8", "glyphFile": "x.svg"}
	}
}`

const dotsRecord = `{
	"glyphSet": "dots",
	"displayName": "Dots",
	"status": "coming_soon",
	"letters": {
		"h": {"code": "4", "glyphFile": "h.svg"}
	}
}`

func svgDoc(label string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(`<svg viewBox="0 0 10 10"><text x="5" y="5">` + label + `</text></svg>`)}
}

func packaged() fstest.MapFS {
	return fstest.MapFS{
		"calc/glyphset.json":   {Data: []byte(calcRecord)},
		"calc/h.svg":           svgDoc("packaged h"),
		"calc/i.svg":           svgDoc("packaged i"),
		"calc/o.svg":           svgDoc("packaged o"),
		"calc/x.svg":           {Data: []byte("this is not a glyph")},
		"dots/glyphset.json":   {Data: []byte(dotsRecord)},
		"broken/glyphset.json": {Data: []byte(`{"glyphSet": "broken"}`)},
	}
}

func newResolver(override fs.FS) (*Resolver, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	r := &Resolver{
		Packaged: &FSStore{FS: packaged()},
		Log:      logger,
	}
	if override != nil {
		r.Override = &FSStore{FS: override}
	}
	return r, hook
}

func labelText(t *testing.T, data []byte) string {
	t.Helper()
	rec, ok := glyph.ParseDocument(data)
	if !ok || len(rec.Labels) == 0 {
		t.Fatalf("unusable glyph document %q", data)
	}
	return rec.Labels[0].Text
}

func TestGlyphTiers(t *testing.T) {
	r, _ := newResolver(fstest.MapFS{
		"calc/h.svg": svgDoc("override h"),
	})
	code := symbols.MustCode("4")

	cases := []struct {
		ref   string
		tier  Tier
		label string
	}{
		{"h.svg", Override, "override h"},
		{"i.svg", Packaged, "packaged i"},
		{"missing.svg", Synthetic, "h"},
	}
	for _, tc := range cases {
		def := r.Glyph(tc.ref, "calc", 'h', code)
		if def.Source != tc.tier {
			t.Errorf("%s: found in %v, want %v", tc.ref, def.Source, tc.tier)
		}
		if got := labelText(t, def.Data); got != tc.label {
			t.Errorf("%s: label %q, want %q", tc.ref, got, tc.label)
		}
	}
}

func TestGlyphWithoutStores(t *testing.T) {
	r := &Resolver{Log: logrus.New()}
	def := r.Glyph("a.svg", "nothing", 'p', symbols.MustCode("01"))
	if def.Source != Synthetic {
		t.Fatalf("source %v", def.Source)
	}
	rec, ok := glyph.ParseDocument(def.Data)
	if !ok {
		t.Fatal("synthetic glyph does not parse")
	}
	if len(rec.Labels) != 2 || rec.Labels[0].Text != "p" || rec.Labels[1].Text != "01" {
		t.Errorf("unexpected labels %+v", rec.Labels)
	}
	if len(rec.Shapes) == 0 {
		t.Error("synthetic glyph has no shapes")
	}
}

type failingStore struct{}

func (failingStore) ReadFile(setID, name string) ([]byte, error) {
	return nil, errors.New("device not ready")
}

func TestStoreErrorsAreLogged(t *testing.T) {
	r, hook := newResolver(nil)
	r.Override = failingStore{}

	def := r.Glyph("h.svg", "calc", 'h', symbols.MustCode("4"))
	if def.Source != Packaged {
		t.Errorf("source %v, want %v", def.Source, Packaged)
	}

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["tier"] == Override {
			warned = true
		}
	}
	if !warned {
		t.Error("storage error was not logged")
	}
}

func TestSet(t *testing.T) {
	r, _ := newResolver(fstest.MapFS{
		"calc/glyphset.json": {Data: []byte(`{"glyphSet": 7}`)},
		"dots/glyphset.json": {Data: []byte(`{
			"glyphSet": "dots",
			"displayName": "Override Dots",
			"status": "available",
			"letters": {}
		}`)},
	})

	// a broken override record falls through to the packaged record
	set, err := r.Set("calc")
	if err != nil {
		t.Fatal(err)
	}
	if set.DisplayName != "Calculator" {
		t.Errorf("display name %q", set.DisplayName)
	}

	set, err = r.Set("dots")
	if err != nil {
		t.Fatal(err)
	}
	if set.DisplayName != "Override Dots" {
		t.Errorf("display name %q", set.DisplayName)
	}
}

func TestSetFailure(t *testing.T) {
	r, _ := newResolver(nil)
	for _, id := range []string{"broken", "missing", "../calc", ""} {
		set, err := r.Set(id)
		if set != nil {
			t.Errorf("%q: got a set", id)
		}
		var cErr *ConfigurationError
		if !errors.As(err, &cErr) {
			t.Errorf("%q: got error %v, want *ConfigurationError", id, err)
			continue
		}
		if err.Error() != ConfigurationMessage {
			t.Errorf("%q: message %q", id, err.Error())
		}
	}

	_, err := r.Set("broken")
	var recErr *symbols.InvalidRecordError
	if !errors.As(err, &recErr) {
		t.Errorf("cause not available: %v", err)
	}
	_, err = r.Set("missing")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("cause not available: %v", err)
	}
}

func TestSetIDMismatch(t *testing.T) {
	r, hook := newResolver(fstest.MapFS{
		"alias/glyphset.json": {Data: []byte(calcRecord)},
	})

	set, err := r.Set("alias")
	if set != nil {
		t.Error("got a set for a record naming another set")
	}
	var recErr *symbols.InvalidRecordError
	if !errors.As(err, &recErr) || recErr.Field != "glyphSet" {
		t.Errorf("got error %v, want glyphSet mismatch", err)
	}
	var cErr *ConfigurationError
	if !errors.As(err, &cErr) {
		t.Errorf("got error %v, want *ConfigurationError", err)
	}

	warned := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["glyphSet"] == "calc" {
			warned = true
		}
	}
	if !warned {
		t.Error("mismatch was not logged")
	}
}

func TestCache(t *testing.T) {
	r, _ := newResolver(nil)
	set, err := r.Set("calc")
	if err != nil {
		t.Fatal(err)
	}
	c := NewCache(r)

	if _, ok := c.Glyph(set, 'z'); ok {
		t.Error("glyph found for letter outside the set")
	}

	rec, ok := c.Glyph(set, 'h')
	if !ok || rec == nil {
		t.Fatal("no glyph for h")
	}
	again, _ := c.Glyph(set, 'h')
	if again != rec {
		t.Error("record was not cached")
	}

	// o and u share a glyph file
	o, _ := c.Glyph(set, 'o')
	u, _ := c.Glyph(set, 'u')
	if o != u {
		t.Error("shared glyph file gives different records")
	}
	if c.Len() != 2 {
		t.Errorf("cache has %d entries, want 2", c.Len())
	}

	c.Invalidate()
	if c.Len() != 0 {
		t.Errorf("cache has %d entries after invalidation", c.Len())
	}
	fresh, _ := c.Glyph(set, 'h')
	if fresh == rec {
		t.Error("invalidated record returned")
	}
}

func TestCacheBrokenDocument(t *testing.T) {
	r, hook := newResolver(nil)
	set, err := r.Set("calc")
	if err != nil {
		t.Fatal(err)
	}
	c := NewCache(r)

	rec, ok := c.Glyph(set, 'x')
	if !ok {
		t.Fatal("no glyph for x")
	}
	var got []string
	for _, l := range rec.Labels {
		got = append(got, l.Text)
	}
	if d := cmp.Diff([]string{"x", "8"}, got); d != "" {
		t.Errorf("placeholder labels (-want +got):\n%s", d)
	}
	if hook.LastEntry() == nil {
		t.Error("nothing logged")
	}
}

func TestCacheSharedPlaceholder(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := &Resolver{
		Packaged: &FSStore{FS: fstest.MapFS{
			"pair/glyphset.json": {Data: []byte(`{
				"glyphSet": "pair",
				"displayName": "Pair",
				"status": "available",
				"letters": {
					"a": {"code": "4", "glyphFile": "missing.svg"},
					"b": {"code": "01", "glyphFile": "missing.svg"},
					"c": {"code": "7", "glyphFile": "bad.svg"},
					"d": {"code": "2", "glyphFile": "bad.svg"}
				}
			}`)},
			"pair/bad.svg": {Data: []byte("this is not a glyph")},
		}},
		Log: logger,
	}
	set, err := r.Set("pair")
	if err != nil {
		t.Fatal(err)
	}
	c := NewCache(r)

	want := map[rune][]string{
		'a': {"a", "4"},
		'b': {"b", "01"},
		'c': {"c", "7"},
		'd': {"d", "2"},
	}
	for range 2 {
		for _, letter := range []rune{'a', 'b', 'c', 'd'} {
			rec, ok := c.Glyph(set, letter)
			if !ok {
				t.Fatalf("no glyph for %q", letter)
			}
			var got []string
			for _, l := range rec.Labels {
				got = append(got, l.Text)
			}
			if d := cmp.Diff(want[letter], got); d != "" {
				t.Errorf("%q: placeholder labels (-want +got):\n%s", letter, d)
			}
		}
	}
	if c.Len() != 4 {
		t.Errorf("cache has %d entries, want 4", c.Len())
	}
}

func TestPreload(t *testing.T) {
	r, _ := newResolver(nil)
	set, err := r.Set("calc")
	if err != nil {
		t.Fatal(err)
	}
	c := NewCache(r)
	c.Preload(set)

	// six letters, but o and u share a file
	if c.Len() != 5 {
		t.Errorf("cache has %d entries, want 5", c.Len())
	}
	for _, letter := range set.Letters() {
		rec, ok := c.Glyph(set, letter)
		if !ok || rec == nil {
			t.Errorf("no record for %q", letter)
		}
	}
	if c.Len() != 5 {
		t.Errorf("lookups after preload added entries: %d", c.Len())
	}
}

func TestCacheConcurrent(t *testing.T) {
	r, _ := newResolver(nil)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	r.Log = logger
	set, err := r.Set("calc")
	if err != nil {
		t.Fatal(err)
	}
	c := NewCache(r)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				switch (i + j) % 3 {
				case 0:
					c.Preload(set)
				case 1:
					c.Invalidate()
				default:
					for _, letter := range set.Letters() {
						if rec, ok := c.Glyph(set, letter); !ok || rec == nil {
							t.Errorf("no record for %q", letter)
						}
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestSession(t *testing.T) {
	r, _ := newResolver(nil)
	s := NewSession(r)

	if _, err := s.Encode("hi"); !errors.Is(err, ErrNoActiveSet) {
		t.Errorf("got %v, want ErrNoActiveSet", err)
	}

	if err := s.Select("calc"); err != nil {
		t.Fatal(err)
	}
	elems, err := s.Encode("hi hop")
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.Format(elems); got != "01 0 4   1 4" {
		t.Errorf("display %q", got)
	}

	recs := s.Glyphs(elems)
	if len(recs) != len(elems) {
		t.Fatalf("got %d records for %d elements", len(recs), len(elems))
	}
	for i, e := range elems {
		if (recs[i] == nil) != (e.Kind == encode.WordBreak) {
			t.Errorf("element %d: record %v", i, recs[i])
		}
	}
	if s.Cache().Len() == 0 {
		t.Error("cache not used")
	}

	// a failed selection keeps the previous set
	var cErr *ConfigurationError
	if err := s.Select("broken"); !errors.As(err, &cErr) {
		t.Errorf("got %v, want *ConfigurationError", err)
	}
	if s.Active() == nil || s.Active().ID != "calc" {
		t.Error("active set lost")
	}
	if s.Cache().Len() == 0 {
		t.Error("cache cleared by failed selection")
	}

	// switching sets clears the cache
	if err := s.Select("dots"); err != nil {
		t.Fatal(err)
	}
	if s.Cache().Len() != 0 {
		t.Errorf("cache has %d entries after switch", s.Cache().Len())
	}
	var missing *encode.MissingMappingError
	if _, err := s.Encode("hi"); !errors.As(err, &missing) || missing.Char != 'i' {
		t.Errorf("got %v, want missing mapping for 'i'", err)
	}
}

func TestSessionValidation(t *testing.T) {
	r, _ := newResolver(nil)
	s := NewSession(r)

	if _, err := s.Encode("hello!"); !errors.Is(err, encode.ErrInvalidCharacters) {
		t.Errorf("got %v", err)
	}
	elems, err := s.Encode("   ")
	if err != nil || elems != nil {
		t.Errorf("blank input gave %v, %v", elems, err)
	}
}

func TestDiscover(t *testing.T) {
	r, _ := newResolver(fstest.MapFS{
		"extra/glyphset.json": {Data: []byte(`{
			"glyphSet": "extra",
			"displayName": "Extra",
			"status": "available",
			"letters": {"a": {"code": "4", "glyphFile": "a.svg"}}
		}`)},
		"calc/readme.txt": {Data: []byte("override art goes here")},
	})

	infos, err := Discover(r, r)
	if err != nil {
		t.Fatal(err)
	}
	want := []SetInfo{
		{ID: "calc", DisplayName: "Calculator", Status: symbols.Available},
		{ID: "dots", DisplayName: "Dots", Status: symbols.ComingSoon},
		{ID: "extra", DisplayName: "Extra", Status: symbols.Available},
	}
	if d := cmp.Diff(want, infos); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestFSStore(t *testing.T) {
	s := &FSStore{FS: packaged()}
	for _, name := range []string{"../dots/glyphset.json", "/etc/passwd", ""} {
		if _, err := s.ReadFile("calc", name); err == nil {
			t.Errorf("%q: no error", name)
		}
	}
	if _, err := s.ReadFile("calc", "nope.svg"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want fs.ErrNotExist", err)
	}

	var zero FSStore
	if _, err := zero.ReadFile("calc", "h.svg"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("zero store: %v", err)
	}
	if ids, err := zero.SetIDs(); err != nil || ids != nil {
		t.Errorf("zero store: %v, %v", ids, err)
	}
}

func TestDirStore(t *testing.T) {
	dir := t.TempDir()

	missing := NewDirStore(filepath.Join(dir, "does-not-exist"))
	if ids, err := missing.SetIDs(); err != nil || len(ids) != 0 {
		t.Errorf("missing directory: %v, %v", ids, err)
	}
	if _, err := missing.ReadFile("calc", ConfigFile); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing directory: %v", err)
	}

	if err := os.MkdirAll(filepath.Join(dir, "calc"), 0o755); err != nil {
		t.Fatal(err)
	}
	err := os.WriteFile(filepath.Join(dir, "calc", ConfigFile), []byte(calcRecord), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewDirStore(dir)
	ids, err := s.SetIDs()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"calc"}, ids); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
	r := &Resolver{Override: s, Log: logrus.New()}
	if _, err := r.Set("calc"); err != nil {
		t.Error(err)
	}
}
