package apiresource

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/restdb/query"
)

func listResources(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Envelope, error) {

	s := GetServicer(ctx)
	name := box.GetUrlParameter(ctx, "collection")

	spec := query.Parse(r.URL.RawQuery)
	result, err := s.List(name, spec)
	if err != nil {
		return nil, err
	}

	writeTotal(w, result.Total)
	writeLinks(w, r, spec.Window, result.Total)

	return &Envelope{Data: result.Records}, nil
}
