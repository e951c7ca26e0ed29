// Package mcp exposes the Scryfall client and formatters as MCP tools.
// The boundary is intentionally thin: handlers validate nothing beyond
// presence, call one client method, and render the payload to text.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/scrytools/scryfall-mcp/internal/format"
	"github.com/scrytools/scryfall-mcp/internal/scryfall"
)

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// defaultListLimit caps how many cards a list tool renders when the
// caller does not say otherwise.
const defaultListLimit = 10

type Server struct {
	mcpServer *mcp.Server
	cards     *scryfall.Client
	logger    *slog.Logger
}

// NewServer wires the Scryfall client into an MCP server and registers
// all tools and resources.
func NewServer(cards *scryfall.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	info := mcp.ServerInfo{
		Name:    "scryfall-mcp",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("Scryfall MCP Server"),
			mcp.WithDescription("Magic: the Gathering card data from Scryfall: search, lookups, rulings, sets, symbology and catalogs as deterministic text."),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Use search_cards with Scryfall query syntax to find cards; narrow output with fields or field_group. Use get_collection for batch lookups of up to 75 cards."),
		),
		cards:  cards,
		logger: logger,
	}

	s.registerTools()
	s.registerServerResource()
	return s
}

// mcpErr returns a user-friendly error for MCP clients.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

// toolErr maps classified client failures onto user-visible, non-fatal
// tool errors. Upstream and rate-limit errors are a normal operating
// condition here; anything else propagates as-is.
func toolErr(err error) error {
	var apiErr *scryfall.APIError
	var rateErr *scryfall.RateLimitError
	var inputErr *scryfall.InvalidInputError
	switch {
	case errors.As(err, &apiErr):
		return mcpErr(fmt.Sprintf("Scryfall error (%s): %s", apiErr.Code, apiErr.Details))
	case errors.As(err, &rateErr):
		return mcpErr("Scryfall rate limit reached and retries are exhausted. Try again in a moment.")
	case errors.As(err, &inputErr):
		return mcpErr(inputErr.Reason)
	default:
		return err
	}
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("scryfall_search_cards").
		Description("Search for Magic cards with Scryfall query syntax (e.g. 'c:u t:instant cmc<=2'). Returns a bounded text list; use fields or field_group to shape the output.").
		Handler(s.handleSearchCards)

	s.mcpServer.Tool("scryfall_get_card").
		Description("Get a single card by name, with exact or fuzzy matching and an optional set code.").
		Handler(s.handleGetCard)

	s.mcpServer.Tool("scryfall_get_card_by_id").
		Description("Get a single card by its Scryfall ID (a UUID).").
		Handler(s.handleGetCardByID)

	s.mcpServer.Tool("scryfall_random_card").
		Description("Get a random card, optionally constrained by a Scryfall search query.").
		Handler(s.handleRandomCard)

	s.mcpServer.Tool("scryfall_get_collection").
		Description("Resolve up to 75 card identifiers (name, name+set, set+collector_number, or id) in one batch and report matched and missing cards.").
		Handler(s.handleGetCollection)

	s.mcpServer.Tool("scryfall_get_rulings").
		Description("Get the official rulings for a card by its Scryfall ID.").
		Handler(s.handleGetRulings)

	s.mcpServer.Tool("scryfall_list_sets").
		Description("List all Magic sets, newest first.").
		Handler(s.handleListSets)

	s.mcpServer.Tool("scryfall_get_set").
		Description("Get one Magic set by its code (e.g. 'neo').").
		Handler(s.handleGetSet)

	s.mcpServer.Tool("scryfall_get_symbology").
		Description("List all card symbols and their meanings.").
		Handler(s.handleGetSymbology)

	s.mcpServer.Tool("scryfall_get_catalog").
		Description("Get a Scryfall catalog: a named list of distinct values such as card-names, creature-types or artist-names.").
		Handler(s.handleGetCatalog)

	s.mcpServer.Tool("scryfall_parse_mana_cost").
		Description("Parse a mana cost string like '{2}{U}{U}' into its mana value, colors and color properties.").
		Handler(s.handleParseManaCost)
}

// renderCard projects one card, falling back to the default detail view
// when no field selection was supplied.
func (s *Server) renderCard(card *scryfall.Card, group string, fields []string) string {
	resolved := format.Resolve(format.Selector{Group: group, Fields: fields})
	var text string
	if resolved == nil {
		text = format.FormatCardDetail(card)
	} else {
		text = format.FormatCard(card, resolved)
	}
	return text + fieldWarnings(group, fields)
}

// renderCards projects a card list the same way.
func (s *Server) renderCards(cards []scryfall.Card, group string, fields []string, limit int) string {
	resolved := format.Resolve(format.Selector{Group: group, Fields: fields})
	var text string
	if resolved == nil {
		text = format.FormatCardsDetail(cards, limit)
	} else {
		text = format.FormatCards(cards, resolved, limit)
	}
	return text + fieldWarnings(group, fields)
}

// fieldWarnings renders diagnostic warnings for unknown field names or
// groups. Warnings never block the lookup itself.
func fieldWarnings(group string, fields []string) string {
	var b strings.Builder
	if len(fields) > 0 {
		for _, w := range format.ValidateFields(fields) {
			b.WriteString("\nwarning: " + w)
		}
	} else if group != "" && !format.KnownGroup(group) {
		fmt.Fprintf(&b, "\nwarning: unknown field group %q (known: %s)",
			group, strings.Join(format.GroupNames(), ", "))
	}
	return b.String()
}

type SearchCardsArgs struct {
	Query      string   `json:"query" jsonschema:"description=Scryfall search query"`
	Unique     string   `json:"unique,omitempty" jsonschema:"description=Rollup mode: cards, art or prints"`
	Order      string   `json:"order,omitempty" jsonschema:"description=Sort key: name, set, released, usd, cmc, ..."`
	Direction  string   `json:"direction,omitempty" jsonschema:"description=Sort direction: auto, asc or desc"`
	Page       FlexInt  `json:"page,omitempty" jsonschema:"description=Results page, 1-based"`
	Limit      FlexInt  `json:"limit,omitempty" jsonschema:"description=Maximum number of cards to render (default 10)"`
	FieldGroup string   `json:"field_group,omitempty" jsonschema:"description=Named field projection: minimal, standard, detailed, full, prices, legalities or images"`
	Fields     []string `json:"fields,omitempty" jsonschema:"description=Explicit ordered field paths such as name, mana_cost, prices.usd. Overrides field_group"`
}

func (s *Server) handleSearchCards(ctx context.Context, args SearchCardsArgs) (string, error) {
	if args.Query == "" {
		return "", mcpErr("A search query is required.")
	}

	list, err := s.cards.SearchCards(ctx, args.Query, scryfall.SearchOptions{
		Unique:    args.Unique,
		Order:     args.Order,
		Direction: args.Direction,
		Page:      int(args.Page),
	})
	if err != nil {
		return "", toolErr(err)
	}

	limit := int(args.Limit)
	if limit <= 0 {
		limit = defaultListLimit
	}

	text := s.renderCards(list.Data, args.FieldGroup, args.Fields, limit)
	if list.HasMore {
		page := int(args.Page)
		if page < 1 {
			page = 1
		}
		text += fmt.Sprintf("\n\n%d cards matched in total; request page %d for more.", list.TotalCards, page+1)
	}
	return text, nil
}

type GetCardArgs struct {
	Name       string   `json:"name" jsonschema:"description=Card name to look up"`
	Exact      FlexBool `json:"exact,omitempty" jsonschema:"description=Require an exact name match instead of fuzzy matching"`
	Set        string   `json:"set,omitempty" jsonschema:"description=Set code to pick a specific printing"`
	FieldGroup string   `json:"field_group,omitempty" jsonschema:"description=Named field projection: minimal, standard, detailed, full, prices, legalities or images"`
	Fields     []string `json:"fields,omitempty" jsonschema:"description=Explicit ordered field paths such as name, mana_cost, prices.usd. Overrides field_group"`
}

func (s *Server) handleGetCard(ctx context.Context, args GetCardArgs) (string, error) {
	if args.Name == "" {
		return "", mcpErr("A card name is required.")
	}
	card, err := s.cards.GetCardByName(ctx, args.Name, bool(args.Exact), args.Set)
	if err != nil {
		return "", toolErr(err)
	}
	return s.renderCard(card, args.FieldGroup, args.Fields), nil
}

type GetCardByIDArgs struct {
	ID         string   `json:"id" jsonschema:"description=Scryfall card ID (UUID)"`
	FieldGroup string   `json:"field_group,omitempty" jsonschema:"description=Named field projection: minimal, standard, detailed, full, prices, legalities or images"`
	Fields     []string `json:"fields,omitempty" jsonschema:"description=Explicit ordered field paths such as name, mana_cost, prices.usd. Overrides field_group"`
}

func (s *Server) handleGetCardByID(ctx context.Context, args GetCardByIDArgs) (string, error) {
	if args.ID == "" {
		return "", mcpErr("A Scryfall card ID is required.")
	}
	card, err := s.cards.GetCardByID(ctx, args.ID)
	if err != nil {
		return "", toolErr(err)
	}
	return s.renderCard(card, args.FieldGroup, args.Fields), nil
}

type RandomCardArgs struct {
	Query      string   `json:"query,omitempty" jsonschema:"description=Optional Scryfall query constraining the random pick"`
	FieldGroup string   `json:"field_group,omitempty" jsonschema:"description=Named field projection: minimal, standard, detailed, full, prices, legalities or images"`
	Fields     []string `json:"fields,omitempty" jsonschema:"description=Explicit ordered field paths such as name, mana_cost, prices.usd. Overrides field_group"`
}

func (s *Server) handleRandomCard(ctx context.Context, args RandomCardArgs) (string, error) {
	card, err := s.cards.RandomCard(ctx, args.Query)
	if err != nil {
		return "", toolErr(err)
	}
	return s.renderCard(card, args.FieldGroup, args.Fields), nil
}

type CollectionIdentifier struct {
	ID              string `json:"id,omitempty" jsonschema:"description=Scryfall card ID"`
	Name            string `json:"name,omitempty" jsonschema:"description=Card name"`
	Set             string `json:"set,omitempty" jsonschema:"description=Set code"`
	CollectorNumber string `json:"collector_number,omitempty" jsonschema:"description=Collector number (requires set)"`
}

type GetCollectionArgs struct {
	Identifiers []CollectionIdentifier `json:"identifiers" jsonschema:"description=Card identifiers to resolve, at most 75"`
	Limit       FlexInt                `json:"limit,omitempty" jsonschema:"description=Maximum number of cards to render (default 10)"`
	FieldGroup  string                 `json:"field_group,omitempty" jsonschema:"description=Named field projection: minimal, standard, detailed, full, prices, legalities or images"`
	Fields      []string               `json:"fields,omitempty" jsonschema:"description=Explicit ordered field paths such as name, mana_cost, prices.usd. Overrides field_group"`
}

func (s *Server) handleGetCollection(ctx context.Context, args GetCollectionArgs) (string, error) {
	identifiers := make([]scryfall.CardIdentifier, len(args.Identifiers))
	for i, id := range args.Identifiers {
		identifiers[i] = scryfall.CardIdentifier{
			ID:              id.ID,
			Name:            id.Name,
			Set:             id.Set,
			CollectorNumber: id.CollectorNumber,
		}
	}

	resp, err := s.cards.GetCollection(ctx, identifiers)
	if err != nil {
		return "", toolErr(err)
	}

	limit := int(args.Limit)
	if limit <= 0 {
		limit = defaultListLimit
	}

	text := s.renderCards(resp.Data, args.FieldGroup, args.Fields, limit)
	if len(resp.NotFound) > 0 {
		missing := make([]string, len(resp.NotFound))
		for i, id := range resp.NotFound {
			missing[i] = id.String()
		}
		text += fmt.Sprintf("\n\nNot found: %s", strings.Join(missing, ", "))
	}
	return text, nil
}

type GetRulingsArgs struct {
	CardID string `json:"card_id" jsonschema:"description=Scryfall card ID (UUID)"`
}

func (s *Server) handleGetRulings(ctx context.Context, args GetRulingsArgs) (string, error) {
	if args.CardID == "" {
		return "", mcpErr("A Scryfall card ID is required.")
	}
	rulings, err := s.cards.GetRulings(ctx, args.CardID)
	if err != nil {
		return "", toolErr(err)
	}
	return format.FormatRulings(rulings), nil
}

func (s *Server) handleListSets(ctx context.Context, args struct{}) (string, error) {
	sets, err := s.cards.ListSets(ctx)
	if err != nil {
		return "", toolErr(err)
	}
	return format.FormatSets(sets), nil
}

type GetSetArgs struct {
	Code string `json:"code" jsonschema:"description=Set code, e.g. neo or mh3"`
}

func (s *Server) handleGetSet(ctx context.Context, args GetSetArgs) (string, error) {
	if args.Code == "" {
		return "", mcpErr("A set code is required.")
	}
	set, err := s.cards.GetSet(ctx, args.Code)
	if err != nil {
		return "", toolErr(err)
	}
	return format.FormatSet(set), nil
}

func (s *Server) handleGetSymbology(ctx context.Context, args struct{}) (string, error) {
	symbols, err := s.cards.GetSymbology(ctx)
	if err != nil {
		return "", toolErr(err)
	}
	return format.FormatSymbology(symbols), nil
}

type GetCatalogArgs struct {
	Name string `json:"name" jsonschema:"description=Catalog name, e.g. card-names, creature-types, artist-names"`
}

func (s *Server) handleGetCatalog(ctx context.Context, args GetCatalogArgs) (string, error) {
	if args.Name == "" {
		return "", mcpErr("A catalog name is required.")
	}
	catalog, err := s.cards.GetCatalog(ctx, args.Name)
	if err != nil {
		return "", toolErr(err)
	}
	return format.FormatCatalog(args.Name, catalog), nil
}

type ParseManaCostArgs struct {
	Cost string `json:"cost" jsonschema:"description=Mana cost string, e.g. {2}{U}{U}"`
}

func (s *Server) handleParseManaCost(ctx context.Context, args ParseManaCostArgs) (string, error) {
	if args.Cost == "" {
		return "", mcpErr("A mana cost string is required.")
	}
	mana, err := s.cards.ParseManaCost(ctx, args.Cost)
	if err != nil {
		return "", toolErr(err)
	}
	return format.FormatManaCost(mana), nil
}

func (s *Server) Start() error {
	return s.StartStdio()
}

func (s *Server) StartStdio() error {
	s.logger.Info("starting MCP server", "transport", "stdio", "version", Version)
	return s.ServeStdio(context.Background())
}

func (s *Server) StartHTTP(addr string) error {
	s.logger.Info("starting MCP server", "transport", "http", "addr", addr, "version", Version)
	return s.ServeHTTP(context.Background(), addr)
}

func (s *Server) StartWebSocket(addr string) error {
	s.logger.Info("starting MCP server", "transport", "websocket", "addr", addr, "version", Version)
	return s.ServeWebSocket(context.Background(), addr)
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}

func (s *Server) ServeWebSocket(ctx context.Context, addr string) error {
	return mcp.ServeWebSocket(ctx, s.mcpServer, addr)
}
