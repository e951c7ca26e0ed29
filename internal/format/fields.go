// Package format projects sparse Scryfall card data onto deterministic
// text. A field selector (named group or explicit path list) resolves to
// an ordered list of field paths; the formatters then read those paths
// from the card's raw object graph with a bounded-depth accessor that
// fails closed on anything absent.
package format

import (
	"fmt"
	"sort"
	"strings"
)

// fieldGroups are the named projections. Order within a group is the
// output order and is part of the contract.
var fieldGroups = map[string][]string{
	"minimal": {"name", "mana_cost", "type_line"},
	"standard": {
		"name", "mana_cost", "type_line", "oracle_text",
		"power", "toughness", "loyalty",
	},
	"detailed": {
		"name", "mana_cost", "type_line", "oracle_text",
		"power", "toughness", "loyalty",
		"set", "set_name", "collector_number", "rarity",
		"artist", "flavor_text",
	},
	"full": {
		"name", "mana_cost", "cmc", "type_line", "oracle_text",
		"power", "toughness", "loyalty", "defense",
		"colors", "color_identity", "keywords", "layout",
		"set", "set_name", "collector_number", "rarity", "released_at",
		"artist", "flavor_text",
		"prices.usd", "prices.usd_foil", "prices.eur", "prices.tix",
		"legalities.standard", "legalities.pioneer", "legalities.modern",
		"legalities.legacy", "legalities.vintage", "legalities.commander",
		"legalities.pauper",
		"image_uris.normal", "scryfall_uri", "id", "oracle_id",
	},
	"prices": {
		"name",
		"prices.usd", "prices.usd_foil", "prices.usd_etched",
		"prices.eur", "prices.eur_foil", "prices.tix",
	},
	"legalities": {
		"name",
		"legalities.standard", "legalities.pioneer", "legalities.modern",
		"legalities.legacy", "legalities.vintage", "legalities.commander",
		"legalities.pauper", "legalities.brawl",
	},
	"images": {
		"name",
		"image_uris.small", "image_uris.normal", "image_uris.large",
		"image_uris.png", "image_uris.art_crop",
	},
}

// directFields is every top-level card field the validator recognizes.
var directFields = map[string]bool{
	"id": true, "oracle_id": true, "name": true, "lang": true,
	"released_at": true, "uri": true, "scryfall_uri": true, "layout": true,
	"mana_cost": true, "cmc": true, "type_line": true, "oracle_text": true,
	"colors": true, "color_identity": true, "keywords": true,
	"power": true, "toughness": true, "loyalty": true, "defense": true,
	"set": true, "set_name": true, "collector_number": true, "rarity": true,
	"artist": true, "flavor_text": true, "card_faces": true,
	"legalities": true, "prices": true, "image_uris": true,
	"related_uris": true, "purchase_uris": true,
	"games": true, "reserved": true, "foil": true, "nonfoil": true,
	"promo": true, "reprint": true, "full_art": true, "textless": true,
	"booster": true, "edhrec_rank": true, "penny_rank": true,
}

// nestedHeads are the card sub-objects dotted paths may traverse into.
var nestedHeads = map[string]bool{
	"prices": true, "legalities": true, "image_uris": true,
	"related_uris": true, "purchase_uris": true,
}

// faceFields are the fields read from an individual face when a card is
// multi-faced. Everything else is card-level and must never be attributed
// to a face.
var faceFields = map[string]bool{
	"name": true, "mana_cost": true, "type_line": true, "oracle_text": true,
	"colors": true, "power": true, "toughness": true, "loyalty": true,
	"defense": true, "artist": true, "flavor_text": true, "image_uris": true,
}

// Selector names a field projection: a group keyword, an explicit ordered
// path list, or neither (the default-rendering sentinel).
type Selector struct {
	Group  string
	Fields []string
}

// Resolve maps a selector to its ordered field-path list.
//
// An explicit field list passes through verbatim: order and duplicates are
// preserved and nothing is validated here (unknown names simply resolve to
// absent values downstream). An explicit empty list is still explicit and
// resolves to an empty list, not the sentinel. A group keyword is a pure
// lookup with no fallback. An absent selector, or an unknown group,
// returns nil, the sentinel telling callers to use the default rendering
// path. The returned slice is always a fresh copy.
func Resolve(sel Selector) []string {
	if sel.Fields != nil {
		out := make([]string, len(sel.Fields))
		copy(out, sel.Fields)
		return out
	}
	if sel.Group == "" {
		return nil
	}
	group, ok := fieldGroups[strings.ToLower(sel.Group)]
	if !ok {
		return nil
	}
	out := make([]string, len(group))
	copy(out, group)
	return out
}

// KnownGroup reports whether name is a defined field group.
func KnownGroup(name string) bool {
	_, ok := fieldGroups[strings.ToLower(name)]
	return ok
}

// GroupNames lists the defined field groups in stable order.
func GroupNames() []string {
	names := make([]string, 0, len(fieldGroups))
	for name := range fieldGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateFields checks explicit field names against the known card field
// universe and returns one warning per unrecognized entry. It is a
// diagnostic aid only and never blocks resolution.
func ValidateFields(fields []string) []string {
	var warnings []string
	for _, f := range fields {
		p := parsePath(f)
		switch {
		case p.tail == "" && directFields[p.head]:
		case p.tail != "" && nestedHeads[p.head]:
		default:
			warnings = append(warnings, fmt.Sprintf("unknown field %q", f))
		}
	}
	return warnings
}

// path is a parsed field path: a direct field, or one step into a
// sub-object. Anything past the second segment is discarded so deeper
// paths fail closed in lookup.
type path struct {
	head string
	tail string
}

func parsePath(s string) path {
	head, rest, found := strings.Cut(s, ".")
	if !found {
		return path{head: head}
	}
	tail, _, _ := strings.Cut(rest, ".")
	return path{head: head, tail: tail}
}

// lookup reads a path from a decoded JSON object, traversing at most two
// levels. It returns false for any absent or null segment.
func lookup(obj map[string]any, p path) (any, bool) {
	v, ok := obj[p.head]
	if !ok || v == nil {
		return nil, false
	}
	if p.tail == "" {
		return v, true
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok = sub[p.tail]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
