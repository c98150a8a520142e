package identity

import (
	"context"
	"errors"

	"github.com/sebas-aldana/brm-client/internal/port"
)

var ErrNotAuthenticated = errors.New("no authenticated client")

// Static supplies a fixed client id, typically loaded from config or the
// stored session. It satisfies port.Identity.
type Static struct {
	id string
}

var _ port.Identity = (*Static)(nil)

func NewStatic(id string) *Static {
	return &Static{id: id}
}

func (s *Static) ClientID(context.Context) (string, error) {
	if s.id == "" {
		return "", ErrNotAuthenticated
	}
	return s.id, nil
}
