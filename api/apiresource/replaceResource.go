package apiresource

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
)

// replaceResource swaps the whole record. An id in the body is ignored.
func replaceResource(ctx context.Context, r *http.Request) (*Envelope, error) {

	s := GetServicer(ctx)
	name := box.GetUrlParameter(ctx, "collection")
	id := box.GetUrlParameter(ctx, "id")

	record, err := readRecord(r)
	if err != nil {
		return nil, err
	}

	replaced, err := s.Replace(name, id, record)
	if err != nil {
		return nil, err
	}

	return &Envelope{Data: replaced}, nil
}
