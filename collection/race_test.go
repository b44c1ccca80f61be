package collection

import (
	"sync"
	"testing"
	"time"
)

func TestRaceInsertTraverse(t *testing.T) {
	Environment(func(filename string) {

		c, err := OpenCollection("race", filename)
		if err != nil {
			t.Fatal(err)
		}
		defer c.Close()

		var wg sync.WaitGroup
		wg.Add(3)

		start := time.Now()
		duration := 500 * time.Millisecond

		// Writer
		go func() {
			defer wg.Done()
			i := 0
			for time.Since(start) < duration {
				created, err := c.Insert(Record{"v": i})
				if err != nil {
					t.Error(err)
					return
				}
				if i%3 == 0 {
					id, _ := IDKey(created["id"])
					c.Replace(id, Record{"v": -i})
				}
				i++
			}
		}()

		// Reader
		go func() {
			defer wg.Done()
			for time.Since(start) < duration {
				c.Traverse(func(row *Row) bool {
					_ = row.Record["v"]
					return true
				})
			}
		}()

		// Lister
		go func() {
			defer wg.Done()
			for time.Since(start) < duration {
				c.List()
			}
		}()

		wg.Wait()
	})
}
