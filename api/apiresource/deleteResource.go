package apiresource

import (
	"context"

	"github.com/fulldump/box"
)

func deleteResource(ctx context.Context) (*Envelope, error) {

	s := GetServicer(ctx)
	name := box.GetUrlParameter(ctx, "collection")
	id := box.GetUrlParameter(ctx, "id")

	removed, err := s.Delete(name, id)
	if err != nil {
		return nil, err
	}

	return &Envelope{Data: removed}, nil
}
