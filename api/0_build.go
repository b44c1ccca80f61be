package api

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
	"github.com/fulldump/box/boxopenapi"

	"github.com/fulldump/restdb/api/apiresource"
	"github.com/fulldump/restdb/metrics"
	"github.com/fulldump/restdb/service"
)

func Build(s service.Servicer, version string, enableMetrics bool) *box.B {

	b := box.NewBox()

	b.WithInterceptors(
		box.SetResponseHeader("Content-Type", "application/json"),
		box.SetResponseHeader("Access-Control-Allow-Origin", "*"),
		box.SetResponseHeader("Access-Control-Expose-Headers", "X-Total-Count, Link"),
		injectServicer(s),
	)

	// Reserved routes are registered before {collection}, resources are
	// matched in registration order.
	b.Resource("/_db").
		WithActions(box.Get(apiresource.GetDatabase))

	b.Resource("/_release").
		WithActions(box.Get(func() string {
			return version
		}))

	if enableMetrics {
		b.Resource("/_metrics").
			WithActions(box.Get(func(w http.ResponseWriter, r *http.Request) {
				metrics.Handler().ServeHTTP(w, r)
			}))
	}

	openapi := b.Resource("/_openapi.json")

	apiresource.BuildResources(b.R)

	spec := boxopenapi.Spec(b)
	spec.Info.Title = "restdb"
	spec.Info.Description = "A JSON REST resource server with filters, sorting, pagination and relations."
	openapi.WithActions(box.Get(func(r *http.Request) any {

		spec.Servers = []boxopenapi.Server{
			{
				Url: "http://" + r.Host,
			},
		}

		return spec
	}))

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apiresource.SetServicer(ctx, s))
		}
	}
}
