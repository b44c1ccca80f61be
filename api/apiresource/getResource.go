package apiresource

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/restdb/query"
)

func getResource(ctx context.Context, r *http.Request) (*Envelope, error) {

	s := GetServicer(ctx)
	name := box.GetUrlParameter(ctx, "collection")
	id := box.GetUrlParameter(ctx, "id")

	record, err := s.Get(name, id, query.Parse(r.URL.RawQuery))
	if err != nil {
		return nil, err
	}

	return &Envelope{Data: record}, nil
}
