// seehuhn.de/go/folio - page annotations for document viewers
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

// Command export writes the test cases as annotation documents, one per
// category, so that they can be inspected with "folio -dir testdata/docs".
// Run from the module root directory.
package main

import (
	"context"
	"maps"
	"slices"

	"seehuhn.de/go/folio/annotation"
	"seehuhn.de/go/folio/persist"
	"seehuhn.de/go/folio/testcases"
)

func main() {
	dir, err := persist.OpenDir("testdata/docs")
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		s := annotation.NewStore("testcases_"+category, category+".pdf")
		for i, tc := range testcases.All[category] {
			for _, a := range tc.Annotations {
				a.Page = i + 1
				if _, err := s.Add(a); err != nil {
					panic(err)
				}
			}
		}
		if err := dir.Save(ctx, s.Snapshot()); err != nil {
			panic(err)
		}
	}
}
