package format

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/scrytools/scryfall-mcp/internal/scryfall"
)

// FormatCard renders one card as text, projecting the given field paths.
// A nil field list returns the empty string: that is the signal for the
// caller to use FormatCardDetail instead, not an error.
//
// Single-faced cards emit the name as a heading followed by one line per
// resolved field (the name itself excluded, it is already the heading).
// Multi-faced cards emit the combined name, then a section per face with
// the face-level fields read from that face, then any genuinely
// card-level fields under a final "Card properties" section, read from
// the card only.
func FormatCard(card *scryfall.Card, fields []string) string {
	if fields == nil {
		return ""
	}

	raw := card.Raw()
	if raw == nil {
		raw = map[string]any{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", card.Name)

	faces := rawFaces(raw)
	if len(faces) > 1 {
		for _, face := range faces {
			name, _ := face["name"].(string)
			fmt.Fprintf(&b, "\n## %s\n", name)
			writeFieldLines(&b, face, fields, true)
		}
		var props strings.Builder
		writeCardLevelLines(&props, raw, fields)
		if props.Len() > 0 {
			b.WriteString("\n## Card properties\n")
			b.WriteString(props.String())
		}
	} else {
		writeFieldLines(&b, raw, fields, false)
	}

	return strings.TrimRight(b.String(), "\n")
}

// rawFaces extracts the card_faces array from a raw card object.
func rawFaces(raw map[string]any) []map[string]any {
	arr, ok := raw["card_faces"].([]any)
	if !ok {
		return nil
	}
	faces := make([]map[string]any, 0, len(arr))
	for _, e := range arr {
		if face, ok := e.(map[string]any); ok {
			faces = append(faces, face)
		}
	}
	return faces
}

// writeFieldLines emits one "path: value" line per resolved field present
// on obj. In face context only face-level fields are considered. Fields
// whose value is absent, null or empty produce no line at all.
func writeFieldLines(b *strings.Builder, obj map[string]any, fields []string, faceContext bool) {
	for _, field := range fields {
		p := parsePath(field)
		if p.head == "name" {
			continue // already emitted as the heading
		}
		if faceContext && !faceFields[p.head] {
			continue
		}
		v, ok := lookup(obj, p)
		if !ok || isEmpty(v) {
			continue
		}
		fmt.Fprintf(b, "%s: %s\n", field, formatFieldValue(v))
	}
}

// writeCardLevelLines emits the resolved fields that are not face-level,
// read exclusively from the card object.
func writeCardLevelLines(b *strings.Builder, raw map[string]any, fields []string) {
	for _, field := range fields {
		p := parsePath(field)
		if p.head == "name" || faceFields[p.head] {
			continue
		}
		v, ok := lookup(raw, p)
		if !ok || isEmpty(v) {
			continue
		}
		fmt.Fprintf(b, "%s: %s\n", field, formatFieldValue(v))
	}
}

// formatFieldValue renders a leaf value for embedded display. It always
// returns something printable; absence is rendered as "N/A" here, while
// line-level suppression of absent fields is the caller's job.
func formatFieldValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "N/A"
	case string:
		if t == "" {
			return "N/A"
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = formatFieldValue(e)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return "N/A"
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// isEmpty reports whether a value should suppress its output line.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// FormatCardDetail is the default rendering used when no field selection
// is supplied: a fixed, human-oriented card summary.
func FormatCardDetail(card *scryfall.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", card.Name)

	if len(card.CardFaces) > 1 {
		for _, face := range card.CardFaces {
			fmt.Fprintf(&b, "\n## %s\n", face.Name)
			writeDetailLine(&b, "mana_cost", face.ManaCost)
			writeDetailLine(&b, "type_line", face.TypeLine)
			writeDetailLine(&b, "oracle_text", face.OracleText)
			writeStatsLine(&b, face.Power, face.Toughness, face.Loyalty, face.Defense)
		}
		b.WriteString("\n")
	} else {
		writeDetailLine(&b, "mana_cost", card.ManaCost)
		writeDetailLine(&b, "type_line", card.TypeLine)
		writeDetailLine(&b, "oracle_text", card.OracleText)
		writeStatsLine(&b, card.Power, card.Toughness, card.Loyalty, card.Defense)
	}

	if card.SetName != "" {
		set := card.SetName
		if card.SetCode != "" {
			set = fmt.Sprintf("%s (%s)", card.SetName, strings.ToUpper(card.SetCode))
		}
		if card.CollectorNumber != "" {
			set += " #" + card.CollectorNumber
		}
		writeDetailLine(&b, "set", set)
	}
	writeDetailLine(&b, "rarity", card.Rarity)
	writeDetailLine(&b, "prices", priceSummary(card.Prices))

	return strings.TrimRight(b.String(), "\n")
}

func writeDetailLine(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func writeStatsLine(b *strings.Builder, power, toughness, loyalty, defense string) {
	switch {
	case power != "" || toughness != "":
		fmt.Fprintf(b, "power/toughness: %s/%s\n", orPlaceholder(power), orPlaceholder(toughness))
	case loyalty != "":
		fmt.Fprintf(b, "loyalty: %s\n", loyalty)
	case defense != "":
		fmt.Fprintf(b, "defense: %s\n", defense)
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func priceSummary(p scryfall.Prices) string {
	var parts []string
	if p.USD != nil && *p.USD != "" {
		parts = append(parts, "$"+*p.USD)
	}
	if p.EUR != nil && *p.EUR != "" {
		parts = append(parts, "€"+*p.EUR)
	}
	if p.TIX != nil && *p.TIX != "" {
		parts = append(parts, *p.TIX+" tix")
	}
	return strings.Join(parts, " / ")
}
