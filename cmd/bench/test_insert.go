package main

import (
	"fmt"
	"time"
)

func TestInsert(c Config) {

	if c.Base == "" {
		_, _, stop := CreateServer(&c)
		defer stop()
	}

	collectionName := CollectionName()
	client := NewClient()

	fmt.Println("Inserting into", collectionName)

	t0 := time.Now()
	InsertAll(c, client, collectionName)
	report("inserted", c.N, time.Since(t0))
}
