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

package annotation

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID returns a short random token suitable as an annotation id.
//
// The token is taken from a random (version 4) UUID.  Ids only need to be
// unique within one document.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:6]) + hex.EncodeToString(u[10:12])
}
