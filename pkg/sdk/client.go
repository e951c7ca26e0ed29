package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/mcp-go/client"
)

// Client is a typed Go client for the scryfall-mcp server.
type Client struct {
	mcp      *client.Client
	retryCfg retry.Config
	timeout  time.Duration
}

// NewClient creates a new SDK client wrapping the given MCP transport.
func NewClient(transport client.Transport, opts ...Option) *Client {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Client{
		mcp:     client.New(transport, client.WithTimeout(o.timeout)),
		timeout: o.timeout,
		retryCfg: retry.Config{
			MaxAttempts:   o.maxAttempts,
			InitialDelay:  o.initialDelay,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Initialize performs the MCP initialize handshake.
func (c *Client) Initialize(ctx context.Context) (*client.ServerInfo, error) {
	return c.mcp.Initialize(ctx)
}

// Close closes the underlying transport.
func (c *Client) Close() error {
	return c.mcp.Close()
}

// call invokes a tool with retry.
func (c *Client) call(ctx context.Context, tool string, args map[string]any) (*client.ToolResult, error) {
	r := retry.New[*client.ToolResult](c.retryCfg)
	result, err := r.Do(ctx, func(ctx context.Context) (*client.ToolResult, error) {
		return c.mcp.CallTool(ctx, tool, args)
	})
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", tool, err)
	}
	if result.IsError {
		msg := ""
		if len(result.Content) > 0 {
			msg = result.Content[0].Text
		}
		return nil, &ToolError{Tool: tool, Message: msg}
	}
	return result, nil
}

// textResult extracts Content[0].Text from a tool result.
func textResult(result *client.ToolResult) (string, error) {
	if len(result.Content) == 0 {
		return "", ErrNoContent
	}
	return result.Content[0].Text, nil
}

// --- Server info ---

// ServerInfo describes the server's version, build and API defaults.
type ServerInfo struct {
	ServerVersion string   `json:"server_version"`
	BuildCommit   string   `json:"build_commit"`
	BuildDate     string   `json:"build_date"`
	APIBaseURL    string   `json:"api_base_url"`
	CollectionMax int      `json:"collection_max_identifiers"`
	FieldGroups   []string `json:"field_groups"`
	Documentation string   `json:"documentation"`
}

// GetServerInfo reads the scryfall://server resource from the server.
func (c *Client) GetServerInfo(ctx context.Context) (*ServerInfo, error) {
	rc, err := c.mcp.ReadResource(ctx, "scryfall://server")
	if err != nil {
		return nil, fmt.Errorf("read server resource: %w", err)
	}
	var info ServerInfo
	if err := json.Unmarshal([]byte(rc.Text), &info); err != nil {
		return nil, fmt.Errorf("unmarshal server info: %w", err)
	}
	return &info, nil
}

// FieldSelection narrows which card fields a tool renders. Fields wins
// over FieldGroup when both are set.
type FieldSelection struct {
	FieldGroup string
	Fields     []string
}

func (f FieldSelection) apply(args map[string]any) {
	if len(f.Fields) > 0 {
		args["fields"] = f.Fields
	}
	if f.FieldGroup != "" {
		args["field_group"] = f.FieldGroup
	}
}

// --- Cards ---

// SearchRequest provides typed parameters for SearchCards.
type SearchRequest struct {
	Query     string
	Unique    string
	Order     string
	Direction string
	Page      int
	Limit     int
	FieldSelection
}

// SearchCards searches for cards with Scryfall query syntax.
func (c *Client) SearchCards(ctx context.Context, req SearchRequest) (string, error) {
	args := map[string]any{"query": req.Query}
	if req.Unique != "" {
		args["unique"] = req.Unique
	}
	if req.Order != "" {
		args["order"] = req.Order
	}
	if req.Direction != "" {
		args["direction"] = req.Direction
	}
	if req.Page > 0 {
		args["page"] = req.Page
	}
	if req.Limit > 0 {
		args["limit"] = req.Limit
	}
	req.apply(args)
	res, err := c.call(ctx, "scryfall_search_cards", args)
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// GetCardRequest provides typed parameters for GetCard.
type GetCardRequest struct {
	Name  string
	Exact bool
	Set   string
	FieldSelection
}

// GetCard fetches one card by name.
func (c *Client) GetCard(ctx context.Context, req GetCardRequest) (string, error) {
	args := map[string]any{"name": req.Name}
	if req.Exact {
		args["exact"] = true
	}
	if req.Set != "" {
		args["set"] = req.Set
	}
	req.apply(args)
	res, err := c.call(ctx, "scryfall_get_card", args)
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// GetCardByID fetches one card by its Scryfall ID.
func (c *Client) GetCardByID(ctx context.Context, id string, sel FieldSelection) (string, error) {
	args := map[string]any{"id": id}
	sel.apply(args)
	res, err := c.call(ctx, "scryfall_get_card_by_id", args)
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// RandomCard fetches a random card, optionally constrained by query.
func (c *Client) RandomCard(ctx context.Context, query string, sel FieldSelection) (string, error) {
	args := map[string]any{}
	if query != "" {
		args["query"] = query
	}
	sel.apply(args)
	res, err := c.call(ctx, "scryfall_random_card", args)
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// Identifier names one card in a collection lookup. Set exactly one of
// ID, Name, Name+Set, or Set+CollectorNumber.
type Identifier struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name,omitempty"`
	Set             string `json:"set,omitempty"`
	CollectorNumber string `json:"collector_number,omitempty"`
}

// CollectionRequest provides typed parameters for GetCollection.
type CollectionRequest struct {
	Identifiers []Identifier
	Limit       int
	FieldSelection
}

// GetCollection resolves up to 75 card identifiers in one batch.
func (c *Client) GetCollection(ctx context.Context, req CollectionRequest) (string, error) {
	args := map[string]any{"identifiers": req.Identifiers}
	if req.Limit > 0 {
		args["limit"] = req.Limit
	}
	req.apply(args)
	res, err := c.call(ctx, "scryfall_get_collection", args)
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// GetRulings fetches the official rulings for a card by its Scryfall ID.
func (c *Client) GetRulings(ctx context.Context, cardID string) (string, error) {
	res, err := c.call(ctx, "scryfall_get_rulings", map[string]any{"card_id": cardID})
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// --- Sets and reference data ---

// ListSets lists all Magic sets, newest first.
func (c *Client) ListSets(ctx context.Context) (string, error) {
	res, err := c.call(ctx, "scryfall_list_sets", nil)
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// GetSet fetches one set by its code.
func (c *Client) GetSet(ctx context.Context, code string) (string, error) {
	res, err := c.call(ctx, "scryfall_get_set", map[string]any{"code": code})
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// GetSymbology lists all card symbols and their meanings.
func (c *Client) GetSymbology(ctx context.Context) (string, error) {
	res, err := c.call(ctx, "scryfall_get_symbology", nil)
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// GetCatalog fetches a named catalog of distinct values.
func (c *Client) GetCatalog(ctx context.Context, name string) (string, error) {
	res, err := c.call(ctx, "scryfall_get_catalog", map[string]any{"name": name})
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// ParseManaCost parses a mana cost string like "{2}{U}{U}".
func (c *Client) ParseManaCost(ctx context.Context, cost string) (string, error) {
	res, err := c.call(ctx, "scryfall_parse_mana_cost", map[string]any{"cost": cost})
	if err != nil {
		return "", err
	}
	return textResult(res)
}
