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

import "seehuhn.de/go/flipcode/symbols"

// SetInfo describes an available symbol set.
type SetInfo struct {
	ID          string
	DisplayName string
	Status      symbols.Status
}

// Discover lists the symbol sets reported by l whose records can be
// loaded by r.  Sets with broken records are left out.
func Discover(l Lister, r *Resolver) ([]SetInfo, error) {
	ids, err := l.SetIDs()
	if err != nil {
		return nil, err
	}
	var res []SetInfo
	for _, id := range ids {
		set, err := r.Set(id)
		if err != nil {
			r.log().WithField("set", id).Debug("skipping symbol set")
			continue
		}
		res = append(res, SetInfo{
			ID:          id,
			DisplayName: set.DisplayName,
			Status:      set.Status,
		})
	}
	return res, nil
}
