package event

import "context"

// Publisher delivers a domain event to the message bus. Delivery is
// best-effort and not part of the storage transaction: by the time Publish
// is called the write has already committed, and a publish failure surfaces
// to the caller without undoing it.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
