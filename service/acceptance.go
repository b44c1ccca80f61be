package service

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/fulldump/restdb/collection"
)

type JSON = map[string]interface{}

type listEnvelope struct {
	Data []JSON `json:"data"`
}

type recordEnvelope struct {
	Data JSON `json:"data"`
}

func decodeList(resp *apitest.Response) []JSON {
	envelope := &listEnvelope{}
	json.Unmarshal(resp.BodyBytes(), envelope)
	return envelope.Data
}

func decodeRecord(resp *apitest.Response) JSON {
	envelope := &recordEnvelope{}
	json.Unmarshal(resp.BodyBytes(), envelope)
	return envelope.Data
}

func listIDs(items []JSON) []string {
	ids := []string{}
	for _, item := range items {
		id, _ := collection.IDKey(item["id"])
		ids = append(ids, id)
	}
	return ids
}

func firstAndLast(items []JSON) (string, string) {
	ids := listIDs(items)
	if len(ids) == 0 {
		return "", ""
	}
	return ids[0], ids[len(ids)-1]
}

// Acceptance runs against a server seeded with Fixtures.
func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create post", func(a *biff.A) {
		resp := apiRequest("POST", "/posts").
			WithBodyJson(JSON{
				"userId": 1,
				"title":  "Post test",
				"body":   "This is a test for the POST verb.",
			}).Do()
		Save(resp, "Create resource", `
			Creates a record. When no id is given the next integral id is
			assigned. Unknown collections are created on the fly.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqual(resp.Header.Get("Content-Type"), "application/json")
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"data": JSON{
				"id":     101,
				"userId": 1,
				"title":  "Post test",
				"body":   "This is a test for the POST verb.",
			},
		})

		a.Alternative("Retrieve created post", func(a *biff.A) {
			resp := apiRequest("GET", "/posts/101").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			post := decodeRecord(resp)
			biff.AssertEqualJson(post["userId"], 1)
			biff.AssertEqual(post["title"], "Post test")
			biff.AssertEqual(post["body"], "This is a test for the POST verb.")
		})
	})

	a.Alternative("Create post with existing id", func(a *biff.A) {
		resp := apiRequest("POST", "/posts").
			WithBodyJson(JSON{
				"id":     1,
				"userId": 1,
				"title":  "Post test v2",
				"body":   "This is a test for the POST verb for existing ID.",
			}).Do()
		Save(resp, "Create resource - duplicate id", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusInternalServerError)

		post := decodeRecord(apiRequest("GET", "/posts/1").Do())
		biff.AssertNotEqual(post["title"], "Post test v2")
		biff.AssertNotEqual(post["body"], "This is a test for the POST verb for existing ID.")
	})

	a.Alternative("Create post with malformed body", func(a *biff.A) {
		resp := apiRequest("POST", "/posts").
			WithBodyString(`{"title": `).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		biff.AssertEqual(len(decodeList(apiRequest("GET", "/posts").Do())), 100)
	})

	a.Alternative("Create post with invalid id", func(a *biff.A) {
		resp := apiRequest("POST", "/posts").
			WithBodyJson(JSON{"id": true}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
	})

	a.Alternative("Create in a new collection", func(a *biff.A) {
		resp := apiRequest("POST", "/likes").
			WithBodyJson(JSON{"postId": 1}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(decodeRecord(resp), JSON{"id": 1, "postId": 1})

		a.Alternative("Dump database", func(a *biff.A) {
			resp := apiRequest("GET", "/_db").Do()
			Save(resp, "Dump database", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			body := resp.BodyJsonMap()["data"].(JSON)
			biff.AssertEqualJson(body["likes"], []JSON{{"id": 1, "postId": 1}})
			biff.AssertEqual(len(body["posts"].([]interface{})), 100)
		})
	})

	a.Alternative("Create in an invalid collection", func(a *biff.A) {
		resp := apiRequest("POST", "/_secret").
			WithBodyJson(JSON{"title": "x"}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
	})

	a.Alternative("List posts", func(a *biff.A) {
		resp := apiRequest("GET", "/posts").Do()
		Save(resp, "List resources", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqual(resp.Header.Get("X-Total-Count"), "100")
		biff.AssertEqual(resp.Header.Get("Access-Control-Allow-Origin"), "*")
		posts := decodeList(resp)
		biff.AssertEqual(len(posts), 100)
		first, last := firstAndLast(posts)
		biff.AssertEqual(first, "1")
		biff.AssertEqual(last, "100")
	})

	a.Alternative("Get post by id", func(a *biff.A) {
		resp := apiRequest("GET", "/posts/1").Do()
		Save(resp, "Get resource", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(decodeRecord(resp), Fixtures()["posts"][0])
	})

	a.Alternative("Get post with invalid id", func(a *biff.A) {
		resp := apiRequest("GET", "/posts/no-id-like-this").Do()
		Save(resp, "Get resource - not found", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqual(resp.BodyJsonMap()["error"].(JSON)["description"], "record not found")
	})

	a.Alternative("List unknown collection", func(a *biff.A) {
		resp := apiRequest("GET", "/nothing").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})

	a.Alternative("Filter by title", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?title=qui%20est%20esse").Do()
		Save(resp, "Filter - equality", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		posts := decodeList(resp)
		biff.AssertEqual(len(posts), 1)
		biff.AssertEqual(posts[0]["title"], "qui est esse")
	})

	a.Alternative("Filter by unknown field", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?genre=nature").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqual(len(decodeList(resp)), 0)
		biff.AssertEqual(resp.Header.Get("X-Total-Count"), "0")
	})

	a.Alternative("Filter with impossible value", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?body=nothing%20to%20see%20here").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqual(len(decodeList(resp)), 0)
	})

	a.Alternative("Paginate", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_page=1").Do()
		Save(resp, "Paginate", `
			Default page size is 10. The Link header points to the first,
			previous, next and last pages.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		posts := decodeList(resp)
		biff.AssertEqual(len(posts), 10)
		biff.AssertEqual(listIDs(posts), []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"})
		biff.AssertEqual(resp.Header.Get("X-Total-Count"), "100")
		link := resp.Header.Get("Link")
		biff.AssertTrue(strings.Contains(link, `</posts?_page=2>; rel="next"`))
		biff.AssertTrue(strings.Contains(link, `</posts?_page=10>; rel="last"`))
	})

	a.Alternative("Paginate with invalid limit", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_limit=limit").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqual(len(decodeList(resp)), 0)
	})

	a.Alternative("Paginate with invalid page", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_page=page").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		first, last := firstAndLast(decodeList(resp))
		biff.AssertEqual(first, "1")
		biff.AssertEqual(last, "10")
	})

	a.Alternative("Paginate above the last page", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_page=15").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqual(len(decodeList(resp)), 0)
	})

	a.Alternative("Sort by title desc", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_sort=title&_order=desc").Do()
		Save(resp, "Sort", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		posts := decodeList(resp)
		biff.AssertEqual(len(posts), 100)
		for i := 1; i < len(posts); i++ {
			biff.AssertTrue(posts[i-1]["title"].(string) >= posts[i]["title"].(string))
		}
	})

	a.Alternative("Sort by unknown field", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_sort=genre").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		first, last := firstAndLast(decodeList(resp))
		biff.AssertEqual(first, "1")
		biff.AssertEqual(last, "100")
	})

	a.Alternative("Sort with invalid order", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_sort=title&_order=n%C3%B6v").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		posts := decodeList(resp)
		for i := 1; i < len(posts); i++ {
			biff.AssertTrue(posts[i-1]["title"].(string) <= posts[i]["title"].(string))
		}
	})

	a.Alternative("Slice", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_start=10&_end=20").Do()
		Save(resp, "Slice", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		posts := decodeList(resp)
		biff.AssertEqual(len(posts), 10)
		first, last := firstAndLast(posts)
		biff.AssertEqual(first, "11")
		biff.AssertEqual(last, "20")
	})

	a.Alternative("Slice with invalid start", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_start=-6&_limit=20").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqual(len(decodeList(resp)), 0)
	})

	a.Alternative("Slice beyond the end", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_start=50&_end=303").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		posts := decodeList(resp)
		biff.AssertEqual(len(posts), 50)
		first, last := firstAndLast(posts)
		biff.AssertEqual(first, "51")
		biff.AssertEqual(last, "100")
	})

	a.Alternative("Slice with reversed limits", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_start=30&_end=5").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqual(len(decodeList(resp)), 0)
	})

	a.Alternative("Operators", func(a *biff.A) {

		cases := []struct {
			query string
			total int
			first string
			last  string
		}{
			{"id_gte=15", 86, "15", "100"},
			{"postId_gte=15", 0, "", ""},
			{"id_lte=10", 10, "1", "10"},
			{"postId_lte=15", 0, "", ""},
			{"id_ne=1", 99, "2", "100"},
			{"postId_ne=1", 0, "", ""},
			{"title_like=molestias", 6, "3", "88"},
			{"postTitle_like=molestias", 0, "", ""},
			{"id_gte=15&id_lte=20", 6, "15", "20"},
		}

		for _, c := range cases {
			resp := apiRequest("GET", "/posts?"+c.query).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			posts := decodeList(resp)
			biff.AssertEqual(len(posts), c.total)
			first, last := firstAndLast(posts)
			biff.AssertEqual(first, c.first)
			biff.AssertEqual(last, c.last)
		}
	})

	a.Alternative("Like", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?title_like=molestias").Do()
		Save(resp, "Filter - like", ``)

		for _, post := range decodeList(resp) {
			biff.AssertTrue(strings.Contains(post["title"].(string), "molestias"))
		}
	})

	a.Alternative("Full-text search", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?q=exercitationem").Do()
		Save(resp, "Full-text search", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		posts := decodeList(resp)
		biff.AssertEqual(len(posts), 9)
		biff.AssertEqual(listIDs(posts)[0], "3")
		for _, post := range posts {
			serialized, _ := json.Marshal(post)
			biff.AssertTrue(strings.Contains(string(serialized), "exercitationem"))
		}
	})

	a.Alternative("Full-text search without matches", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?q=invalidSearch").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqual(len(decodeList(resp)), 0)
	})

	a.Alternative("Embed comments", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_embed=comments").Do()
		Save(resp, "Embed", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		total := 0
		for _, post := range decodeList(resp) {
			comments := post["comments"].([]interface{})
			for _, comment := range comments {
				biff.AssertEqual(comment.(JSON)["postId"], post["id"])
			}
			total += len(comments)
		}
		biff.AssertEqual(total, 100)
	})

	a.Alternative("Embed comments of one post", func(a *biff.A) {
		resp := apiRequest("GET", "/posts/1?_embed=comments").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		comments := decodeRecord(resp)["comments"].([]interface{})
		biff.AssertEqual(len(comments), 5)
		for _, comment := range comments {
			biff.AssertEqualJson(comment.(JSON)["postId"], 1)
		}
	})

	a.Alternative("Embed unknown collection", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_embed=invalidThing").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		for _, post := range decodeList(resp) {
			biff.AssertEqual(len(post["invalidThing"].([]interface{})), 0)
		}
	})

	a.Alternative("Expand user", func(a *biff.A) {
		resp := apiRequest("GET", "/posts/11?_expand=user").Do()
		Save(resp, "Expand", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		user := decodeRecord(resp)["user"].(JSON)
		biff.AssertEqualJson(user["id"], 2)
	})

	a.Alternative("Comments of a post", func(a *biff.A) {
		resp := apiRequest("GET", "/posts/1/comments").Do()
		Save(resp, "Related resources", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		comments := decodeList(resp)
		biff.AssertEqual(listIDs(comments), []string{"1", "2", "3", "4", "5"})
		for _, comment := range comments {
			biff.AssertEqualJson(comment["postId"], 1)
		}
	})

	a.Alternative("Comments of an unknown post", func(a *biff.A) {
		resp := apiRequest("GET", "/posts/999/comments").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})

	a.Alternative("Update post", func(a *biff.A) {
		resp := apiRequest("PUT", "/posts/1").
			WithBodyJson(JSON{
				"userId": 1,
				"id":     1,
				"title":  "It has been modified",
				"body":   "est et itaque qui laboriosam dolor ut debitis",
			}).Do()
		Save(resp, "Replace resource", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)

		resp = apiRequest("GET", "/posts/1").Do()
		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqual(decodeRecord(resp)["title"], "It has been modified")

		a.Alternative("Position is kept", func(a *biff.A) {
			posts := decodeList(apiRequest("GET", "/posts?_limit=1").Do())
			biff.AssertEqual(posts[0]["title"], "It has been modified")
		})
	})

	a.Alternative("Update post ignoring body id", func(a *biff.A) {
		resp := apiRequest("PUT", "/posts/2").
			WithBodyJson(JSON{"id": 500, "title": "moved?"}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(decodeRecord(resp), JSON{"id": 2, "title": "moved?"})
		biff.AssertEqual(apiRequest("GET", "/posts/500").Do().StatusCode, http.StatusNotFound)
	})

	a.Alternative("Update unknown post", func(a *biff.A) {
		resp := apiRequest("PUT", "/posts/121").
			WithBodyJson(JSON{
				"userId": 13,
				"id":     121,
				"title":  "no title",
				"body":   "nobody",
			}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})

	a.Alternative("Delete post", func(a *biff.A) {
		resp := apiRequest("DELETE", "/posts/1").Do()
		Save(resp, "Delete resource", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(decodeRecord(resp)["id"], 1)

		resp = apiRequest("GET", "/posts").Do()
		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		posts := decodeList(resp)
		biff.AssertEqual(len(posts), 99)
		for _, post := range posts {
			biff.AssertNotEqual(listIDs([]JSON{post})[0], "1")
		}

		a.Alternative("Ids are not reused", func(a *biff.A) {
			resp := apiRequest("POST", "/posts").
				WithBodyJson(JSON{"title": "after delete"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(decodeRecord(resp)["id"], 101)
		})

		a.Alternative("Restore deleted post", func(a *biff.A) {
			resp := apiRequest("POST", "/posts").
				WithBodyJson(Fixtures()["posts"][0]).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqual(apiRequest("GET", "/posts/1").Do().StatusCode, http.StatusOK)
		})
	})

	a.Alternative("Delete unknown post", func(a *biff.A) {
		resp := apiRequest("DELETE", "/posts/200").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})

	a.Alternative("Release", func(a *biff.A) {
		resp := apiRequest("GET", "/_release").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqual(resp.BodyJson(), "test")
	})

	a.Alternative("OpenAPI", func(a *biff.A) {
		resp := apiRequest("GET", "/_openapi.json").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertNotNil(resp.BodyJsonMap()["paths"])
	})
}
