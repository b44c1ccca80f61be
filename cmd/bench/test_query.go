package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"
)

// TestQuery measures filtered, sorted and paginated reads over c.N records.
func TestQuery(c Config) {

	if c.Base == "" {
		_, _, stop := CreateServer(&c)
		defer stop()
	}

	collectionName := CollectionName()
	client := NewClient()

	fmt.Println("Preload records...")
	InsertAll(c, client, collectionName)

	queries := []url.Values{
		{"value_gte": {"50"}, "_sort": {"title"}, "_page": {"3"}},
		{"title_like": {"record 1"}, "_limit": {"20"}},
		{"q": {"record 42"}},
		{"worker": {"0"}, "_start": {"10"}, "_end": {"20"}},
	}

	requests := int64(c.Workers) * 50
	pending := requests

	t0 := time.Now()
	Parallel(c.Workers, func() {
		for {
			n := atomic.AddInt64(&pending, -1)
			if n < 0 {
				return
			}

			q := queries[n%int64(len(queries))]
			resp, err := client.Get(c.Base + "/" + collectionName + "?" + q.Encode())
			if err != nil {
				fmt.Println("ERROR: do request:", err.Error())
				return
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				fmt.Println("ERROR: bad status:", resp.Status)
			}
		}
	})

	report("queries", requests, time.Since(t0))
}
