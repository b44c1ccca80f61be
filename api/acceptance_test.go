package api

import (
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/fulldump/restdb/database"
	"github.com/fulldump/restdb/service"
)

func TestAcceptance(t *testing.T) {

	biff.Alternative("Setup", func(a *biff.A) {

		db := database.NewDatabase(&database.Config{})

		biff.AssertNil(db.Load())
		biff.AssertEqual(db.GetStatus(), database.StatusOperating)
		biff.AssertNil(db.Seed(service.Fixtures()))

		s := service.NewService(db)

		b := Build(s, "test", true)
		b.WithInterceptors(
			Metrics,
			PrettyErrorInterceptor,
			RecoverFromPanic,
			InterceptorUnavailable(db),
		)

		api := apitest.NewWithHandler(b)
		defer api.Destroy()

		service.Acceptance(a, func(method, path string) *apitest.Request {
			return api.Request(method, path)
		})

	})
}
