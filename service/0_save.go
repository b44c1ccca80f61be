package service

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

const exampleHost = "localhost:3000"

// Save writes the request and response of a scenario as a markdown example
// into API_EXAMPLES_PATH. Does nothing when the variable is not set.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("API_EXAMPLES_PATH")
	if examplesPath == "" {
		return
	}

	request := response.Request

	target := request.URL.Path
	if request.URL.RawQuery != "" {
		target += "?" + request.URL.RawQuery
	}

	requestBody := formatJSON(response.BodyRequestString())

	s := &strings.Builder{}

	fmt.Fprintf(s, "# %s\n", title)
	s.WriteString(mdDescription(description) + "\n")

	s.WriteString("Curl example:\n\n```sh\n")
	s.WriteString("curl ")
	if request.Method != http.MethodGet {
		s.WriteString("-X " + request.Method + " ")
	}
	fmt.Fprintf(s, "\"http://%s%s\"", exampleHost, target)
	eachHeader(request.Header, func(k, v string) {
		fmt.Fprintf(s, " \\\n-H \"%s: %s\"", k, v)
	})
	if requestBody != "" {
		s.WriteString(" \\\n-d '" + requestBody + "'")
	}
	s.WriteString("\n```\n\n\n")

	s.WriteString("HTTP request/response example:\n\n```http\n")

	// Request
	fmt.Fprintf(s, "%s %s %s\n", request.Method, target, request.Proto)
	s.WriteString("Host: " + exampleHost + "\n")
	eachHeader(request.Header, func(k, v string) {
		s.WriteString(k + ": " + v + "\n")
	})
	s.WriteString("\n")
	if requestBody != "" {
		s.WriteString(requestBody + "\n\n")
	}

	// Response
	s.WriteString(response.Proto + " " + response.Status + "\n")
	eachHeader(response.Header, func(k, v string) {
		if k == "Date" {
			v = "Mon, 19 Oct 2026 10:00:00 GMT"
		}
		s.WriteString(k + ": " + v + "\n")
	})
	s.WriteString("\n")
	s.WriteString(formatJSON(response.BodyString()) + "\n")
	s.WriteString("```\n\n\n")

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	writeFile(path.Join(examplesPath, path.Clean(filename)), s.String())
}

// eachHeader visits headers sorted by key so examples are stable.
func eachHeader(header http.Header, f func(k, v string)) {
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		for _, v := range header[k] {
			f(k, v)
		}
	}
}

func formatJSON(body string) string {
	if body == "" {
		return ""
	}

	var i any
	err := json.Unmarshal([]byte(body), &i)
	if err != nil {
		return body
	}

	b, err := json.Marshal(i, json.Deterministic(true), jsontext.WithIndent("    "))
	if err != nil {
		return body
	}

	return string(b)
}

func writeFile(filename, text string) {
	fmt.Println("Saving", filename)
	err := os.WriteFile(filename, []byte(text), 0666)
	if err != nil {
		fmt.Println("Saving err:", err)
	}
}

func mdDescription(d string) string {
	d = mdCropTabs(d)
	return strings.ReplaceAll(d, "\n´´´", "\n```")
}

// mdCropTabs removes the indentation shared by all lines of a raw string
// literal. First and last lines are ignored when looking for it.
func mdCropTabs(d string) string {
	lines := strings.Split(d, "\n")

	first := 0
	last := len(lines)
	if len(lines) > 2 {
		first++
		last--
	}

	minTabs := -1
	for _, line := range lines[first:last] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c := len(line) - len(strings.TrimLeft(line, "\t"))
		if minTabs < 0 || c < minTabs {
			minTabs = c
		}
	}
	if minTabs <= 0 {
		return d
	}

	prefix := strings.Repeat("\t", minTabs)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}
