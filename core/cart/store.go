package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexedwards/scs/v2"
)

// sessionKey is the well-known key the serialized cart lives under.
const sessionKey = "cart"

// Store owns the durable representation of the cart: a single serialized
// record in the caller's session. There is no partial-write primitive;
// every mutation goes through a whole-record read-modify-write.
type Store struct {
	session *scs.SessionManager
}

func NewStore(session *scs.SessionManager) *Store {
	return &Store{session: session}
}

// Read returns the cart persisted in the current session. A missing record
// yields an empty cart. An unparseable record is discarded and replaced by
// an empty cart, never surfaced as an error.
func (s *Store) Read(ctx context.Context) Cart {
	b := s.session.GetBytes(ctx, sessionKey)
	if len(b) == 0 {
		return Cart{}
	}

	var items []Line
	if err := json.Unmarshal(b, &items); err != nil {
		s.session.Remove(ctx, sessionKey)
		return Cart{}
	}

	return Cart{Items: items}
}

// Write replaces the persisted record with crt in a single overwrite.
func (s *Store) Write(ctx context.Context, crt Cart) error {
	b, err := json.Marshal(crt.Items)
	if err != nil {
		return fmt.Errorf("marshaling cart: %w", err)
	}

	s.session.Put(ctx, sessionKey, b)
	return nil
}

// Clear removes the persisted record entirely.
func (s *Store) Clear(ctx context.Context) {
	s.session.Remove(ctx, sessionKey)
}
