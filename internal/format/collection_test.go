package format

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/scrytools/scryfall-mcp/internal/scryfall"
)

func mustCards(t *testing.T, names ...string) []scryfall.Card {
	t.Helper()
	cards := make([]scryfall.Card, len(names))
	for i, name := range names {
		data := fmt.Sprintf(`{"name":%q,"set":"tst","mana_cost":"{1}"}`, name)
		if err := json.Unmarshal([]byte(data), &cards[i]); err != nil {
			t.Fatalf("unmarshal card %q: %v", name, err)
		}
	}
	return cards
}

func TestFormatCardsTruncation(t *testing.T) {
	cards := mustCards(t, "Alpha", "Beta", "Gamma", "Delta", "Epsilon")

	got := FormatCards(cards, []string{"name"}, 2)
	if !strings.HasPrefix(got, "Showing 2 of 5 cards") {
		t.Errorf("header wrong:\n%s", got)
	}
	if !strings.Contains(got, "# Alpha") || !strings.Contains(got, "# Beta") {
		t.Errorf("first two cards missing:\n%s", got)
	}
	if strings.Contains(got, "# Gamma") {
		t.Errorf("truncated card rendered:\n%s", got)
	}
	if !strings.Contains(got, "...and 3 more not shown") {
		t.Errorf("truncation footer missing:\n%s", got)
	}
}

func TestFormatCardsNoTruncationFooterWhenComplete(t *testing.T) {
	cards := mustCards(t, "Alpha", "Beta")

	got := FormatCards(cards, []string{"name"}, 10)
	if !strings.HasPrefix(got, "Showing 2 of 2 cards") {
		t.Errorf("header wrong:\n%s", got)
	}
	if strings.Contains(got, "more not shown") {
		t.Errorf("footer should be absent when nothing is truncated:\n%s", got)
	}
}

func TestFormatCardsDivider(t *testing.T) {
	cards := mustCards(t, "Alpha", "Beta", "Gamma")

	got := FormatCards(cards, []string{"name"}, 0)
	if n := strings.Count(got, "---"); n != 2 {
		t.Errorf("divider count = %d, want 2:\n%s", n, got)
	}

	// Input order is preserved.
	if strings.Index(got, "# Alpha") > strings.Index(got, "# Beta") {
		t.Errorf("order not preserved:\n%s", got)
	}
}

func TestFormatCardsPreservesProjection(t *testing.T) {
	var card scryfall.Card
	data := `{"name":"Ragavan, Nimble Pilferer","set":"mh2","mana_cost":"{R}","prices":{"usd":null,"eur":"10.00"}}`
	if err := json.Unmarshal([]byte(data), &card); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := FormatCards([]scryfall.Card{card}, []string{"name", "mana_cost", "prices.usd", "prices.eur"}, 10)
	if !strings.Contains(got, "mana_cost: {R}") {
		t.Errorf("mana cost missing:\n%s", got)
	}
	if strings.Contains(got, "prices.usd") {
		t.Errorf("null price leaked:\n%s", got)
	}
	if !strings.Contains(got, "prices.eur: 10.00") {
		t.Errorf("eur price missing:\n%s", got)
	}
}

func TestFormatCardsEmptyList(t *testing.T) {
	got := FormatCards(nil, []string{"name"}, 10)
	if got != "Showing 0 of 0 cards" {
		t.Errorf("empty list = %q", got)
	}
}

func TestFormatCardsDetailLimit(t *testing.T) {
	cards := mustCards(t, "Alpha", "Beta", "Gamma")
	got := FormatCardsDetail(cards, 1)
	if !strings.HasPrefix(got, "Showing 1 of 3 cards") {
		t.Errorf("header wrong:\n%s", got)
	}
	if !strings.Contains(got, "...and 2 more not shown") {
		t.Errorf("footer missing:\n%s", got)
	}
}
