package scryfall

import (
	"encoding/json"
	"fmt"
)

// Card is a Magic card as returned by Scryfall. Almost every field is
// optional; multi-faced cards carry most per-face data in CardFaces.
type Card struct {
	// Core identifiers
	ID       string `json:"id"`
	OracleID string `json:"oracle_id,omitempty"`

	// Card details
	Name          string     `json:"name"`
	Lang          string     `json:"lang,omitempty"`
	ReleasedAt    string     `json:"released_at,omitempty"`
	URI           string     `json:"uri,omitempty"`
	ScryfallURI   string     `json:"scryfall_uri,omitempty"`
	Layout        string     `json:"layout,omitempty"`
	ImageURIs     *ImageURIs `json:"image_uris,omitempty"`
	ManaCost      string     `json:"mana_cost,omitempty"`
	CMC           float64    `json:"cmc,omitempty"`
	TypeLine      string     `json:"type_line,omitempty"`
	OracleText    string     `json:"oracle_text,omitempty"`
	Colors        []string   `json:"colors,omitempty"`
	ColorIdentity []string   `json:"color_identity,omitempty"`
	Keywords      []string   `json:"keywords,omitempty"`

	// Gameplay
	Power     string `json:"power,omitempty"`
	Toughness string `json:"toughness,omitempty"`
	Loyalty   string `json:"loyalty,omitempty"`
	Defense   string `json:"defense,omitempty"`

	// Print details
	SetCode         string `json:"set"`
	SetName         string `json:"set_name,omitempty"`
	CollectorNumber string `json:"collector_number,omitempty"`
	Rarity          string `json:"rarity,omitempty"`
	Artist          string `json:"artist,omitempty"`
	FlavorText      string `json:"flavor_text,omitempty"`

	// Faces of double-faced, modal and split cards
	CardFaces []CardFace `json:"card_faces,omitempty"`

	Legalities map[string]string `json:"legalities,omitempty"`
	Prices     Prices            `json:"prices,omitempty"`

	RelatedURIs  map[string]string `json:"related_uris,omitempty"`
	PurchaseURIs map[string]string `json:"purchase_uris,omitempty"`

	// raw is the undecoded view of the same JSON, kept for field
	// projection: paths like "prices.usd" are looked up here with a
	// bounded-depth accessor instead of reflection.
	raw map[string]any
}

// UnmarshalJSON decodes the typed fields and retains the raw object graph.
func (c *Card) UnmarshalJSON(data []byte) error {
	type cardAlias Card
	var a cardAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = Card(a)
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.raw = raw
	return nil
}

// Raw returns the card's undecoded JSON object, or nil if the card was not
// produced by unmarshalling.
func (c *Card) Raw() map[string]any { return c.raw }

// CardFace is one printable side of a multi-faced card.
type CardFace struct {
	Name       string     `json:"name"`
	ManaCost   string     `json:"mana_cost,omitempty"`
	TypeLine   string     `json:"type_line,omitempty"`
	OracleText string     `json:"oracle_text,omitempty"`
	Colors     []string   `json:"colors,omitempty"`
	Power      string     `json:"power,omitempty"`
	Toughness  string     `json:"toughness,omitempty"`
	Loyalty    string     `json:"loyalty,omitempty"`
	Defense    string     `json:"defense,omitempty"`
	Artist     string     `json:"artist,omitempty"`
	FlavorText string     `json:"flavor_text,omitempty"`
	ImageURIs  *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs holds card imagery in the sizes Scryfall serves.
type ImageURIs struct {
	Small      string `json:"small,omitempty"`
	Normal     string `json:"normal,omitempty"`
	Large      string `json:"large,omitempty"`
	PNG        string `json:"png,omitempty"`
	ArtCrop    string `json:"art_crop,omitempty"`
	BorderCrop string `json:"border_crop,omitempty"`
}

// Prices lists a card's prices per currency. Absent prices are null
// upstream, hence pointers.
type Prices struct {
	USD       *string `json:"usd"`
	USDFoil   *string `json:"usd_foil"`
	USDEtched *string `json:"usd_etched"`
	EUR       *string `json:"eur"`
	EURFoil   *string `json:"eur_foil"`
	TIX       *string `json:"tix"`
}

// CardList is one page of a card search.
type CardList struct {
	Object     string   `json:"object"`
	TotalCards int      `json:"total_cards"`
	HasMore    bool     `json:"has_more"`
	NextPage   string   `json:"next_page,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Data       []Card   `json:"data"`
}

// Set is a Magic set.
type Set struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	URI         string `json:"uri,omitempty"`
	ScryfallURI string `json:"scryfall_uri,omitempty"`
	SearchURI   string `json:"search_uri,omitempty"`
	ReleasedAt  string `json:"released_at,omitempty"`
	SetType     string `json:"set_type"`
	CardCount   int    `json:"card_count"`
	Digital     bool   `json:"digital,omitempty"`
	FoilOnly    bool   `json:"foil_only,omitempty"`
	IconSVGURI  string `json:"icon_svg_uri,omitempty"`
}

// SetList is the full list of sets.
type SetList struct {
	Object  string `json:"object"`
	HasMore bool   `json:"has_more"`
	Data    []Set  `json:"data"`
}

// Ruling is one official ruling on a card.
type Ruling struct {
	Object      string `json:"object"`
	OracleID    string `json:"oracle_id"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	Comment     string `json:"comment"`
}

// RulingList is the set of rulings for one card.
type RulingList struct {
	Object  string   `json:"object"`
	HasMore bool     `json:"has_more"`
	Data    []Ruling `json:"data"`
}

// CardSymbol describes one mana or card symbol.
type CardSymbol struct {
	Object             string   `json:"object"`
	Symbol             string   `json:"symbol"`
	LooseVariant       string   `json:"loose_variant,omitempty"`
	English            string   `json:"english"`
	Transposable       bool     `json:"transposable,omitempty"`
	RepresentsMana     bool     `json:"represents_mana,omitempty"`
	AppearsInManaCosts bool     `json:"appears_in_mana_costs,omitempty"`
	ManaValue          *float64 `json:"mana_value,omitempty"`
	Funny              bool     `json:"funny,omitempty"`
	Colors             []string `json:"colors,omitempty"`
}

// SymbolList is the full symbology table.
type SymbolList struct {
	Object  string       `json:"object"`
	HasMore bool         `json:"has_more"`
	Data    []CardSymbol `json:"data"`
}

// Catalog is a named list of distinct values (card names, artist names...).
type Catalog struct {
	Object      string   `json:"object"`
	URI         string   `json:"uri,omitempty"`
	TotalValues int      `json:"total_values"`
	Data        []string `json:"data"`
}

// ManaCost is the result of parsing a mana cost string.
type ManaCost struct {
	Object       string   `json:"object"`
	Cost         string   `json:"cost"`
	CMC          float64  `json:"cmc"`
	Colors       []string `json:"colors"`
	Colorless    bool     `json:"colorless"`
	Monocolored  bool     `json:"monocolored"`
	Multicolored bool     `json:"multicolored"`
}

// CardIdentifier addresses one card in a collection lookup. Use either
// Name (optionally with Set), Set plus CollectorNumber, or a Scryfall ID.
type CardIdentifier struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name,omitempty"`
	Set             string `json:"set,omitempty"`
	CollectorNumber string `json:"collector_number,omitempty"`
}

// String renders the identifier the way a user wrote it, for not-found
// reporting.
func (ci CardIdentifier) String() string {
	switch {
	case ci.Name != "" && ci.Set != "":
		return fmt.Sprintf("%s (%s)", ci.Name, ci.Set)
	case ci.Name != "":
		return ci.Name
	case ci.Set != "" && ci.CollectorNumber != "":
		return fmt.Sprintf("%s #%s", ci.Set, ci.CollectorNumber)
	default:
		return ci.ID
	}
}

// CollectionResponse partitions a batch lookup into matched cards and the
// identifiers Scryfall could not resolve.
type CollectionResponse struct {
	Object   string           `json:"object"`
	NotFound []CardIdentifier `json:"not_found"`
	Data     []Card           `json:"data"`
}
