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
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
)

// ConfigFile is the name of the symbol set record inside a set directory.
const ConfigFile = "glyphset.json"

// Store gives read access to the files of symbol sets.
//
// If a file does not exist, ReadFile must return an error for which
// errors.Is(err, fs.ErrNotExist) is true.
type Store interface {
	ReadFile(setID, name string) ([]byte, error)
}

// Lister enumerates the symbol sets available in a store.
type Lister interface {
	SetIDs() ([]string, error)
}

// FSStore is a [Store] where every symbol set is a directory, named after
// the set ID, at the top level of a file system.
//
// A zero FSStore, or one whose directory does not exist, is an empty
// store.
type FSStore struct {
	FS fs.FS
}

// NewDirStore returns a store for the symbol sets in the directory dir.
func NewDirStore(dir string) *FSStore {
	return &FSStore{FS: os.DirFS(dir)}
}

// ReadFile implements the [Store] interface.
func (s *FSStore) ReadFile(setID, name string) ([]byte, error) {
	if s == nil || s.FS == nil {
		return nil, fs.ErrNotExist
	}
	if !validID(setID) {
		return nil, &fs.PathError{Op: "open", Path: setID, Err: fs.ErrInvalid}
	}
	full := path.Join(setID, name)
	if !fs.ValidPath(full) || !strings.HasPrefix(full, setID+"/") {
		return nil, &fs.PathError{Op: "open", Path: full, Err: fs.ErrInvalid}
	}
	return fs.ReadFile(s.FS, full)
}

// SetIDs implements the [Lister] interface.
// Every top-level directory is reported, in sorted order.
func (s *FSStore) SetIDs() ([]string, error) {
	if s == nil || s.FS == nil {
		return nil, nil
	}
	entries, err := fs.ReadDir(s.FS, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() && validID(e.Name()) {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}

func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

// union merges the set IDs of several listers.
type union []Lister

func (u union) SetIDs() ([]string, error) {
	var all []string
	for _, l := range u {
		ids, err := l.SetIDs()
		if err != nil {
			return nil, err
		}
		all = append(all, ids...)
	}
	slices.Sort(all)
	return slices.Compact(all), nil
}
