package bootstrap

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
	"github.com/klauspost/compress/gzip"

	"github.com/fulldump/restdb/configuration"
	"github.com/fulldump/restdb/database"
	"github.com/fulldump/restdb/service"
)

func TestHandler(t *testing.T) {

	biff.Alternative("Setup", func(a *biff.A) {

		c := configuration.Default()

		db := database.NewDatabase(&database.Config{})
		biff.AssertNil(db.Load())
		biff.AssertNil(db.Seed(service.Fixtures()))

		api := apitest.NewWithHandler(Handler(&c, db))
		defer api.Destroy()

		a.Alternative("Compressed response", func(a *biff.A) {
			resp := api.Request("GET", "/posts/1").
				WithHeader("Accept-Encoding", "gzip").
				Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.Header.Get("Content-Encoding"), "gzip")

			gz, err := gzip.NewReader(strings.NewReader(resp.BodyString()))
			biff.AssertNil(err)
			body, err := io.ReadAll(gz)
			biff.AssertNil(err)
			biff.AssertTrue(strings.HasPrefix(string(body), `{"data":{`))
		})

		a.Alternative("Metrics", func(a *biff.A) {
			api.Request("GET", "/posts").Do()

			resp := api.Request("GET", "/_metrics").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertTrue(strings.Contains(resp.BodyString(), "restdb_http_requests_total"))
		})

		a.Alternative("Unavailable while closing", func(a *biff.A) {
			biff.AssertNil(db.Stop())

			resp := api.Request("GET", "/posts").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusServiceUnavailable)
		})
	})
}
