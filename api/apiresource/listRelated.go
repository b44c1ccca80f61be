package apiresource

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
)

// listRelated serves /posts/1/comments. Query parameters are ignored.
func listRelated(ctx context.Context, w http.ResponseWriter) (*Envelope, error) {

	s := GetServicer(ctx)
	name := box.GetUrlParameter(ctx, "collection")
	id := box.GetUrlParameter(ctx, "id")
	child := box.GetUrlParameter(ctx, "child")

	records, err := s.Related(name, id, child)
	if err != nil {
		return nil, err
	}

	writeTotal(w, len(records))

	return &Envelope{Data: records}, nil
}
