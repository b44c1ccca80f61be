package apiresource

import (
	"context"
)

// GetDatabase returns every collection, like the seed file it came from.
func GetDatabase(ctx context.Context) *Envelope {
	return &Envelope{Data: GetServicer(ctx).Dump()}
}
