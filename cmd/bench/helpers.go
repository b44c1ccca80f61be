package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fulldump/restdb/bootstrap"
	"github.com/fulldump/restdb/configuration"
)

type JSON = map[string]any

func Parallel(workers int, f func()) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}
	wg.Wait()
}

func TempDir() (string, func()) {
	dir, err := os.MkdirTemp("", "restdb_bench_*")
	if err != nil {
		panic("Could not create temp directory: " + err.Error())
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

// CollectionName returns a fresh name, collections are created by the first
// POST.
func CollectionName() string {
	return "bench" + strconv.FormatInt(time.Now().UnixNano(), 10)
}

func NewClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     1024,
			MaxIdleConnsPerHost: 1024,
			MaxIdleConns:        1024,
		},
		Timeout: 10 * time.Second,
	}
}

// CreateServer starts an embedded server persisting into a temporary
// directory. The directory is returned so logs can be replayed afterwards.
func CreateServer(c *Config) (dir string, start, stop func()) {
	dir, cleanup := TempDir()
	cleanups = append(cleanups, cleanup)

	conf := configuration.Default()
	conf.Dir = dir
	conf.ShowBanner = false
	conf.EnableCompression = false
	c.Base = "http://" + conf.HttpAddr

	start, stop = bootstrap.Bootstrap(&conf)
	go start()

	waitOperating(c.Base)

	return dir, start, stop
}

func waitOperating(base string) {
	for i := 0; i < 100; i++ {
		resp, err := http.Get(base + "/_release")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	fmt.Println("ERROR: server not ready")
	os.Exit(2)
}

// InsertAll creates c.N records spread across c.Workers workers.
func InsertAll(c Config, client *http.Client, collectionName string) {
	items := c.N
	url := c.Base + "/" + collectionName

	Parallel(c.Workers, func() {
		for {
			n := atomic.AddInt64(&items, -1)
			if n < 0 {
				return
			}

			payload, _ := json.Marshal(JSON{
				"id":     n + 1,
				"value":  n % 100,
				"worker": n % int64(c.Workers),
				"title":  "record " + strconv.FormatInt(n, 10),
			})

			resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
			if err != nil {
				fmt.Println("ERROR: do request:", err.Error())
				os.Exit(4)
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if resp.StatusCode != http.StatusCreated {
				fmt.Println("ERROR: bad status:", resp.Status)
			}
		}
	})
}

func report(action string, n int64, took time.Duration) {
	fmt.Println(action+":", n)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f req/sec\n", float64(n)/took.Seconds())
}
