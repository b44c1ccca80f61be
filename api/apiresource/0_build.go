package apiresource

import (
	"github.com/fulldump/box"
)

// BuildResources mounts the generic REST routes below r. It must be called
// after reserved routes are registered since {collection} matches anything.
func BuildResources(r *box.R) *box.R {

	resources := r.Resource("/{collection}").
		WithActions(
			box.Get(listResources),
			box.Post(createResource),
		)

	r.Resource("/{collection}/{id}").
		WithActions(
			box.Get(getResource),
			box.Put(replaceResource),
			box.Delete(deleteResource),
		)

	r.Resource("/{collection}/{id}/{child}").
		WithActions(
			box.Get(listRelated),
		)

	return resources
}
