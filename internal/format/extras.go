package format

import (
	"fmt"
	"strings"

	"github.com/scrytools/scryfall-mcp/internal/scryfall"
)

// FormatSets renders the set list, one set per line.
func FormatSets(sets *scryfall.SetList) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d sets\n", len(sets.Data))
	for _, s := range sets.Data {
		fmt.Fprintf(&b, "\n%s", formatSetLine(s))
	}
	return b.String()
}

// FormatSet renders one set.
func FormatSet(s *scryfall.Set) string {
	var b strings.Builder
	b.WriteString(formatSetLine(*s))
	if s.ReleasedAt != "" {
		fmt.Fprintf(&b, "\nreleased_at: %s", s.ReleasedAt)
	}
	if s.Digital {
		b.WriteString("\ndigital: true")
	}
	return b.String()
}

func formatSetLine(s scryfall.Set) string {
	return fmt.Sprintf("%s - %s (%s, %d cards)", strings.ToUpper(s.Code), s.Name, s.SetType, s.CardCount)
}

// FormatRulings renders a card's rulings in publication order.
func FormatRulings(rulings *scryfall.RulingList) string {
	if len(rulings.Data) == 0 {
		return "No rulings recorded for this card."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d rulings\n", len(rulings.Data))
	for _, r := range rulings.Data {
		fmt.Fprintf(&b, "\n[%s, %s] %s", r.PublishedAt, r.Source, r.Comment)
	}
	return b.String()
}

// FormatSymbology renders the card symbol table.
func FormatSymbology(symbols *scryfall.SymbolList) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d symbols\n", len(symbols.Data))
	for _, s := range symbols.Data {
		fmt.Fprintf(&b, "\n%s - %s", s.Symbol, s.English)
		if s.ManaValue != nil {
			fmt.Fprintf(&b, " (mana value %s)", formatFieldValue(*s.ManaValue))
		}
	}
	return b.String()
}

// FormatCatalog renders a catalog as a comma-separated value list.
func FormatCatalog(name string, catalog *scryfall.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Catalog %q: %d values\n\n", name, catalog.TotalValues)
	b.WriteString(strings.Join(catalog.Data, ", "))
	return b.String()
}

// FormatManaCost renders a parsed mana cost.
func FormatManaCost(m *scryfall.ManaCost) string {
	var b strings.Builder
	fmt.Fprintf(&b, "cost: %s\n", m.Cost)
	fmt.Fprintf(&b, "cmc: %s\n", formatFieldValue(m.CMC))
	if len(m.Colors) > 0 {
		fmt.Fprintf(&b, "colors: %s\n", strings.Join(m.Colors, ", "))
	}
	switch {
	case m.Colorless:
		b.WriteString("colorless: true\n")
	case m.Monocolored:
		b.WriteString("monocolored: true\n")
	case m.Multicolored:
		b.WriteString("multicolored: true\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
