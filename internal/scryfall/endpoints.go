package scryfall

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// SearchOptions tune a full-text card search. Zero values are omitted and
// fall back to Scryfall's defaults.
type SearchOptions struct {
	// Unique is the rollup mode: cards, art or prints.
	Unique string
	// Order is the sort key (name, set, released, usd, cmc, ...).
	Order string
	// Direction is the sort direction: auto, asc or desc.
	Direction string
	// Page selects a results page, 1-based.
	Page int
	// IncludeExtras includes tokens and other extras in results.
	IncludeExtras bool
}

// SearchCards runs a full-text search with Scryfall query syntax.
func (c *Client) SearchCards(ctx context.Context, query string, opts SearchOptions) (*CardList, error) {
	q := url.Values{}
	q.Set("q", query)
	if opts.Unique != "" {
		q.Set("unique", opts.Unique)
	}
	if opts.Order != "" {
		q.Set("order", opts.Order)
	}
	if opts.Direction != "" {
		q.Set("dir", opts.Direction)
	}
	if opts.Page > 0 {
		q.Set("page", fmt.Sprintf("%d", opts.Page))
	}
	if opts.IncludeExtras {
		q.Set("include_extras", "true")
	}

	var list CardList
	if err := c.get(ctx, "/cards/search", q, &list); err != nil {
		return nil, fmt.Errorf("search cards %q: %w", query, err)
	}
	return &list, nil
}

// GetCardByName fetches one card by name. Exact mode requires the full
// name; fuzzy mode tolerates typos and partial names. An optional set code
// narrows the lookup to a printing from that set.
func (c *Client) GetCardByName(ctx context.Context, name string, exact bool, set string) (*Card, error) {
	q := url.Values{}
	if exact {
		q.Set("exact", name)
	} else {
		q.Set("fuzzy", name)
	}
	if set != "" {
		q.Set("set", set)
	}

	var card Card
	if err := c.get(ctx, "/cards/named", q, &card); err != nil {
		return nil, fmt.Errorf("get card %q: %w", name, err)
	}
	return &card, nil
}

// GetCardByID fetches a card by Scryfall ID. IDs are UUIDs; anything else
// is rejected before a request is made.
func (c *Client) GetCardByID(ctx context.Context, id string) (*Card, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("%q is not a Scryfall card ID (UUID)", id)}
	}

	var card Card
	if err := c.get(ctx, "/cards/"+id, nil, &card); err != nil {
		return nil, fmt.Errorf("get card %s: %w", id, err)
	}
	return &card, nil
}

// RandomCard fetches a random card, optionally constrained by a search
// query.
func (c *Client) RandomCard(ctx context.Context, query string) (*Card, error) {
	var q url.Values
	if query != "" {
		q = url.Values{}
		q.Set("q", query)
	}

	var card Card
	if err := c.get(ctx, "/cards/random", q, &card); err != nil {
		return nil, fmt.Errorf("random card: %w", err)
	}
	return &card, nil
}

// GetRulings fetches the rulings for a card by its Scryfall ID.
func (c *Client) GetRulings(ctx context.Context, cardID string) (*RulingList, error) {
	if _, err := uuid.Parse(cardID); err != nil {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("%q is not a Scryfall card ID (UUID)", cardID)}
	}

	var rulings RulingList
	if err := c.get(ctx, "/cards/"+cardID+"/rulings", nil, &rulings); err != nil {
		return nil, fmt.Errorf("get rulings for %s: %w", cardID, err)
	}
	return &rulings, nil
}

// ListSets fetches all Magic sets, newest first.
func (c *Client) ListSets(ctx context.Context) (*SetList, error) {
	var sets SetList
	if err := c.get(ctx, "/sets", nil, &sets); err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return &sets, nil
}

// GetSet fetches one set by its code.
func (c *Client) GetSet(ctx context.Context, code string) (*Set, error) {
	var set Set
	if err := c.get(ctx, "/sets/"+url.PathEscape(code), nil, &set); err != nil {
		return nil, fmt.Errorf("get set %q: %w", code, err)
	}
	return &set, nil
}

// GetSymbology fetches the full card symbol table.
func (c *Client) GetSymbology(ctx context.Context) (*SymbolList, error) {
	var symbols SymbolList
	if err := c.get(ctx, "/symbology", nil, &symbols); err != nil {
		return nil, fmt.Errorf("get symbology: %w", err)
	}
	return &symbols, nil
}

// GetCatalog fetches a named catalog, e.g. "card-names" or "creature-types".
func (c *Client) GetCatalog(ctx context.Context, name string) (*Catalog, error) {
	var catalog Catalog
	if err := c.get(ctx, "/catalog/"+url.PathEscape(name), nil, &catalog); err != nil {
		return nil, fmt.Errorf("get catalog %q: %w", name, err)
	}
	return &catalog, nil
}

// ParseManaCost parses a mana cost string like "{2}{U}{U}" into its
// components.
func (c *Client) ParseManaCost(ctx context.Context, cost string) (*ManaCost, error) {
	q := url.Values{}
	q.Set("cost", cost)

	var mana ManaCost
	if err := c.get(ctx, "/symbology/parse-mana", q, &mana); err != nil {
		return nil, fmt.Errorf("parse mana cost %q: %w", cost, err)
	}
	return &mana, nil
}
