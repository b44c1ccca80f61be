package configuration

import (
	"testing"

	"github.com/fulldump/biff"
)

func TestDefault(t *testing.T) {

	c := Default()

	biff.AssertEqual(c.HttpAddr, "127.0.0.1:3000")
	biff.AssertEqual(c.Dir, "")
	biff.AssertEqual(c.Seed, "")
	biff.AssertTrue(c.EnableMetrics)
	biff.AssertFalse(c.Version)
}

func TestDefault_NotShared(t *testing.T) {

	a := Default()
	a.HttpAddr = ":8080"

	biff.AssertEqual(Default().HttpAddr, "127.0.0.1:3000")
}
