package port

import "context"

// Identity supplies the authenticated client's identifier. It is consumed
// only to stamp clientId on purchase submissions.
type Identity interface {
	ClientID(ctx context.Context) (string, error)
}
