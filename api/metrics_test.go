package api

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fulldump/restdb/database"
	"github.com/fulldump/restdb/metrics"
	"github.com/fulldump/restdb/service"
)

func countSeries(c prometheus.Collector) int {
	ch := make(chan prometheus.Metric)
	go func() {
		c.Collect(ch)
		close(ch)
	}()

	n := 0
	for range ch {
		n++
	}
	return n
}

func TestMetrics_UnknownCollectionsShareSeries(t *testing.T) {

	db := database.NewDatabase(&database.Config{})
	biff.AssertNil(db.Load())

	b := Build(service.NewService(db), "test", true)
	b.WithInterceptors(
		Metrics,
		PrettyErrorInterceptor,
		RecoverFromPanic,
		InterceptorUnavailable(db),
	)

	api := apitest.NewWithHandler(b)
	defer api.Destroy()

	resp := api.Request("GET", "/warmup").Do()
	biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	api.Request("GET", "/warmup/1").Do()

	requests := countSeries(metrics.RequestTotal)
	durations := countSeries(metrics.RequestDuration)

	for i := 0; i < 50; i++ {
		n := strconv.Itoa(i)
		api.Request("GET", "/nope"+n).Do()
		api.Request("GET", "/nope"+n+"/"+n).Do()
	}

	biff.AssertEqual(countSeries(metrics.RequestTotal), requests)
	biff.AssertEqual(countSeries(metrics.RequestDuration), durations)
}
