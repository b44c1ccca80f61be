package service

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fulldump/restdb/collection"
)

var fixtureWords = []string{
	"sunt", "aut", "facere", "repellat", "provident", "occaecati", "excepturi",
	"optio", "reprehenderit", "dolorem", "eum", "magni", "eos", "aperiam",
	"quia", "nesciunt", "quas", "odio", "adipisci", "rerum", "voluptatem",
	"ipsam", "beatae", "ullam", "dolor", "ut", "doloremque", "magnam",
	"asperiores", "veritatis", "tempore", "sit", "amet", "fugit", "natus",
	"error", "ratione", "vero",
}

var (
	fixtureLikeIDs = []int{3, 17, 29, 44, 61, 88}
	fixtureTextIDs = []int{3, 8, 21, 35, 47, 52, 70, 83, 99}
)

func fixtureSentence(seed, words int) string {
	result := make([]string, words)
	for k := range result {
		result[k] = fixtureWords[(seed*31+k*17)%len(fixtureWords)]
	}
	return strings.Join(result, " ")
}

// Fixtures is the dataset used by the acceptance scenarios: 100 posts
// written by 10 users and 5 comments for each of the first 20 posts.
// Six titles contain "molestias" and nine bodies contain "exercitationem".
func Fixtures() map[string][]collection.Record {

	posts := []collection.Record{}
	for i := 1; i <= 100; i++ {
		title := fixtureSentence(i, 5)
		if i == 2 {
			title = "qui est esse"
		}
		if slices.Contains(fixtureLikeIDs, i) {
			title += " molestias"
		}

		body := fixtureSentence(i+7, 8) + "\n" + fixtureSentence(i+13, 6)
		if slices.Contains(fixtureTextIDs, i) {
			body += "\nexercitationem " + fixtureSentence(i+19, 3)
		}

		posts = append(posts, collection.Record{
			"id":     i,
			"userId": (i-1)/10 + 1,
			"title":  title,
			"body":   body,
		})
	}

	comments := []collection.Record{}
	for i := 1; i <= 100; i++ {
		comments = append(comments, collection.Record{
			"id":     i,
			"postId": (i-1)/5 + 1,
			"name":   fixtureSentence(i+3, 4),
			"email":  fmt.Sprintf("reader%d@example.com", i),
			"body":   fixtureSentence(i+5, 10),
		})
	}

	users := []collection.Record{}
	for i := 1; i <= 10; i++ {
		users = append(users, collection.Record{
			"id":       i,
			"name":     fixtureSentence(i+11, 2),
			"username": fmt.Sprintf("user%d", i),
		})
	}

	return map[string][]collection.Record{
		"posts":    posts,
		"comments": comments,
		"users":    users,
	}
}
