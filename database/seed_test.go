package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fulldump/restdb/collection"
)

var expectedSeed = map[string][]collection.Record{
	"posts": {
		{"id": 1.0, "title": "json-server", "author": "typicode", "tags": []any{"a", "b"}},
	},
	"comments": {
		{"id": 1.0, "body": "some comment", "postId": 1.0},
	},
}

func writeSeed(t *testing.T, name, content string) string {
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0666))
	return filename
}

func TestReadSeed_Formats(t *testing.T) {

	files := map[string]string{
		"db.json": `{
			"posts": [{"id": 1, "title": "json-server", "author": "typicode", "tags": ["a", "b"]}],
			"comments": [{"id": 1, "body": "some comment", "postId": 1}]
		}`,
		"db.jsonc": `{
			// blog posts
			"posts": [{"id": 1, "title": "json-server", "author": "typicode", "tags": ["a", "b",],},],
			"comments": [{"id": 1, "body": "some comment", "postId": 1}], /* trailing */
		}`,
		"db.yaml": `
posts:
  - id: 1
    title: json-server
    author: typicode
    tags: [a, b]
comments:
  - id: 1
    body: some comment
    postId: 1
`,
	}

	for name, content := range files {
		read, err := ReadSeed(writeSeed(t, name, content))
		require.NoError(t, err, name)
		require.Equal(t, expectedSeed, read, name)
	}
}

func TestReadSeed_IgnoresSingularResources(t *testing.T) {
	read, err := ReadSeed(writeSeed(t, "db.json", `{"posts": [], "profile": {"name": "typicode"}}`))

	require.NoError(t, err)
	require.Equal(t, map[string][]collection.Record{"posts": {}}, read)
}

func TestReadSeed_Errors(t *testing.T) {
	_, err := ReadSeed(writeSeed(t, "db.json", `{"posts": [1, 2]}`))
	require.Error(t, err)

	_, err = ReadSeed(writeSeed(t, "db.json", `{"posts": [`))
	require.Error(t, err)

	_, err = ReadSeed(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
