package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/restdb/collection"
	"github.com/fulldump/restdb/database"
)

func TestCreate_FailedFirstInsertDropsCollection(t *testing.T) {

	dir := t.TempDir()
	db := database.NewDatabase(&database.Config{Dir: dir})
	biff.AssertNil(db.Load())
	defer db.Stop()

	s := NewService(db)

	_, err := s.Create("likes", collection.Record{"id": true})

	biff.AssertTrue(errors.Is(err, collection.ErrInvalidID))
	biff.AssertEqual(len(s.Collections()), 0)
	_, statErr := os.Stat(filepath.Join(dir, "likes.jsonl"))
	biff.AssertTrue(os.IsNotExist(statErr))

	created, err := s.Create("likes", collection.Record{"postId": 1})
	biff.AssertNil(err)
	biff.AssertEqualJson(created, collection.Record{"id": 1, "postId": 1})
}
