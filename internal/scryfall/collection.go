package scryfall

import (
	"context"
	"fmt"
)

// MaxCollectionSize is the identifier cap Scryfall enforces per
// /cards/collection request.
const MaxCollectionSize = 75

// collectionRequest is the body for /cards/collection.
type collectionRequest struct {
	Identifiers []CardIdentifier `json:"identifiers"`
}

// GetCollection resolves a batch of card identifiers in one request and
// returns the matched/unmatched partitions. Empty input and input above
// MaxCollectionSize are rejected synchronously: the upstream would refuse
// them anyway, so there is no point spending the round trip.
func (c *Client) GetCollection(ctx context.Context, identifiers []CardIdentifier) (*CollectionResponse, error) {
	if len(identifiers) == 0 {
		return nil, &InvalidInputError{Reason: "collection lookup requires at least one identifier"}
	}
	if len(identifiers) > MaxCollectionSize {
		return nil, &InvalidInputError{
			Reason: fmt.Sprintf("collection lookup accepts at most %d identifiers, got %d", MaxCollectionSize, len(identifiers)),
		}
	}

	var resp CollectionResponse
	if err := c.post(ctx, "/cards/collection", collectionRequest{Identifiers: identifiers}, &resp); err != nil {
		return nil, fmt.Errorf("collection lookup: %w", err)
	}
	return &resp, nil
}
