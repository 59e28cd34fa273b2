/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package manifest

import "encoding/json"

// WorkspacesKind identifies which JSON shape the workspaces field used.
type WorkspacesKind int

const (
	// WorkspacesNone means the field was absent or unrecognized.
	WorkspacesNone WorkspacesKind = iota
	// WorkspacesList is the plain array form: ["packages/*"].
	WorkspacesList
	// WorkspacesObject is the object form used by yarn classic with
	// nohoist: {"packages": ["packages/*"], "nohoist": [...]}.
	WorkspacesObject
)

// Workspaces is the two-variant workspaces field of package.json.
// Both variants carry a pattern list; Kind records which shape the
// manifest declared.
type Workspaces struct {
	Kind     WorkspacesKind
	Patterns []string
}

// UnmarshalJSON decodes either workspaces shape. Non-string entries in
// the pattern list are silently skipped. An unrecognized shape decodes
// to WorkspacesNone rather than failing the whole manifest.
func (w *Workspaces) UnmarshalJSON(data []byte) error {
	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		w.Kind = WorkspacesList
		w.Patterns = stringsOf(list)
		return nil
	}

	var obj struct {
		Packages []any `json:"packages"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		w.Kind = WorkspacesObject
		w.Patterns = stringsOf(obj.Packages)
		return nil
	}

	*w = Workspaces{}
	return nil
}

// MarshalJSON writes the field back in the shape it was read from.
func (w Workspaces) MarshalJSON() ([]byte, error) {
	switch w.Kind {
	case WorkspacesList:
		return json.Marshal(w.Patterns)
	case WorkspacesObject:
		return json.Marshal(map[string][]string{"packages": w.Patterns})
	default:
		return []byte("null"), nil
	}
}

// IsZero reports whether no workspace patterns were declared.
func (w Workspaces) IsZero() bool {
	return w.Kind == WorkspacesNone || len(w.Patterns) == 0
}

func stringsOf(values []any) []string {
	var out []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
