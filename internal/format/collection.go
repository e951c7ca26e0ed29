package format

import (
	"fmt"
	"strings"

	"github.com/scrytools/scryfall-mcp/internal/scryfall"
)

// divider separates card entries in list output.
const divider = "---"

// FormatCards renders a bounded list of cards using a resolved field
// projection. A nil field list returns the empty string (same escape
// hatch as FormatCard). limit < 1 means no truncation. Input order is
// preserved; sorting is a search-option concern, not a formatting one.
func FormatCards(cards []scryfall.Card, fields []string, limit int) string {
	if fields == nil {
		return ""
	}
	return formatMany(cards, limit, func(c *scryfall.Card) string {
		return FormatCard(c, fields)
	})
}

// FormatCardsDetail renders a bounded list of cards with the default
// per-card rendering.
func FormatCardsDetail(cards []scryfall.Card, limit int) string {
	return formatMany(cards, limit, FormatCardDetail)
}

func formatMany(cards []scryfall.Card, limit int, render func(*scryfall.Card) string) string {
	shown := len(cards)
	if limit > 0 && limit < shown {
		shown = limit
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d of %d cards\n", shown, len(cards))

	for i := 0; i < shown; i++ {
		b.WriteString("\n")
		if i > 0 {
			b.WriteString(divider + "\n")
		}
		b.WriteString(render(&cards[i]))
		b.WriteString("\n")
	}

	if omitted := len(cards) - shown; omitted > 0 {
		fmt.Fprintf(&b, "\n...and %d more not shown\n", omitted)
	}

	return strings.TrimRight(b.String(), "\n")
}
