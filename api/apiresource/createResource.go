package apiresource

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
)

func createResource(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Envelope, error) {

	s := GetServicer(ctx)
	name := box.GetUrlParameter(ctx, "collection")

	record, err := readRecord(r)
	if err != nil {
		return nil, err
	}

	created, err := s.Create(name, record)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return &Envelope{Data: created}, nil
}
