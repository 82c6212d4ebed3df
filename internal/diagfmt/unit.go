package diagfmt

import (
	"encoding/json"
	"io"
	"strings"

	"sable/internal/hir"
	"sable/internal/source"
)

// UnitItemJSON is one lowered item in JSON form.
type UnitItemJSON struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
	ID   string `json:"id"`
	Node string `json:"node"`
}

// UnitJSON summarizes a lowered unit: its items in module order plus
// table sizes.
type UnitJSON struct {
	Name       string         `json:"name"`
	Items      []UnitItemJSON `json:"items"`
	Bodies     int            `json:"bodies"`
	TraitItems int            `json:"trait_items,omitempty"`
	ImplItems  int            `json:"impl_items,omitempty"`
}

// BuildUnitOutput shapes the lowered-unit JSON document.
func BuildUnitOutput(u *hir.Unit, interner *source.Interner) UnitJSON {
	out := UnitJSON{
		Name:       u.Name,
		Items:      make([]UnitItemJSON, 0, len(u.ItemNodes)),
		Bodies:     len(u.BodyIDs),
		TraitItems: len(u.TraitItems),
		ImplItems:  len(u.ImplItems),
	}
	for _, node := range u.ItemNodes {
		it := u.Items[node]
		if it == nil {
			continue
		}
		name := ""
		if interner != nil {
			if s, ok := interner.Lookup(it.Name); ok {
				name = s
			}
		}
		out.Items = append(out.Items, UnitItemJSON{
			Kind: strings.ToLower(it.Kind.String()),
			Name: name,
			ID:   it.ID.String(),
			Node: it.Node.String(),
		})
	}
	return out
}

// WriteUnitJSON serializes the lowered-unit document with indentation.
func WriteUnitJSON(w io.Writer, u *hir.Unit, interner *source.Interner) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildUnitOutput(u, interner))
}
