package metrics

import (
	"errors"
	"strconv"
	"testing"

	. "github.com/fulldump/biff"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	c.Write(m)
	return m.GetCounter().GetValue()
}

func TestRoute(t *testing.T) {
	AssertEqual(Route("/"), "root")
	AssertEqual(Route("/posts"), "{collection}")
	AssertEqual(Route("/posts/12"), "{collection}/{id}")
	AssertEqual(Route("/posts/12/comments"), "{collection}/{id}/{child}")
	AssertEqual(Route("/posts/12/comments/3"), "unknown")
	AssertEqual(Route("/_db"), "_db")
	AssertEqual(Route("/_openapi.json"), "_openapi.json")
	AssertEqual(Route("/_metrics/extra"), "unknown")
	AssertEqual(Route("/_secret"), "{collection}")
}

func TestRoute_Bounded(t *testing.T) {
	routes := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := strconv.Itoa(i)
		routes[Route("/nope"+n)] = true
		routes[Route("/nope"+n+"/"+n)] = true
		routes[Route("/_nope"+n)] = true
	}

	AssertEqual(len(routes), 2)
}

func TestOperation(t *testing.T) {
	notFound := errors.New("not found")

	Operation("metrics-test", "get", nil)
	Operation("metrics-test", "get", notFound, notFound)
	Operation("metrics-test", "get", errors.New("boom"), notFound)

	AssertEqual(counterValue(OperationsTotal.WithLabelValues("metrics-test", "get", "ok")), 1.0)
	AssertEqual(counterValue(OperationsTotal.WithLabelValues("metrics-test", "get", "miss")), 1.0)
	AssertEqual(counterValue(OperationsTotal.WithLabelValues("metrics-test", "get", "error")), 1.0)
}
