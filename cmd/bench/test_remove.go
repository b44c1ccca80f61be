package main

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/fulldump/restdb/collection"
)

func TestRemove(c Config) {

	createServer := c.Base == ""

	var stop func()
	var dataDir string
	if createServer {
		dataDir, _, stop = CreateServer(&c)
	}

	collectionName := CollectionName()
	client := NewClient()

	fmt.Println("Preload records...")
	InsertAll(c, client, collectionName)

	pending := c.N

	t0 := time.Now()
	Parallel(c.Workers, func() {
		for {
			n := atomic.AddInt64(&pending, -1)
			if n < 0 {
				return
			}

			u := c.Base + "/" + collectionName + "/" + strconv.FormatInt(n+1, 10)
			req, err := http.NewRequest(http.MethodDelete, u, nil)
			if err != nil {
				fmt.Println("ERROR: new request:", err.Error())
				return
			}

			resp, err := client.Do(req)
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

	report("removed", c.N, time.Since(t0))

	if !createServer {
		return
	}

	stop() // flushes the command logs

	// Replay the log with twice as many commands as records
	t1 := time.Now()
	col, err := collection.OpenCollection(collectionName, filepath.Join(dataDir, collectionName+".jsonl"))
	if err != nil {
		fmt.Println("ERROR: open collection:", err.Error())
		return
	}
	defer col.Close()
	tookOpen := time.Since(t1)
	fmt.Println("open took:", tookOpen, "records:", col.Len())
	fmt.Printf("Throughput Open: %.2f commands/sec\n", float64(2*c.N)/tookOpen.Seconds())
}
