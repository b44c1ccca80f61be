package apiresource

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/fulldump/restdb/collection"
	"github.com/fulldump/restdb/query"
)

var ErrMalformedBody = errors.New("malformed body")

// Envelope wraps every successful response.
type Envelope struct {
	Data any `json:"data"`
}

func readRecord(r *http.Request) (collection.Record, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	record := collection.Record(nil)
	err = json.Unmarshal(data, &record)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedBody, err.Error())
	}
	if record == nil {
		return nil, fmt.Errorf("%w: a JSON object is expected", ErrMalformedBody)
	}

	return record, nil
}

func writeTotal(w http.ResponseWriter, total int) {
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
}

// writeLinks advertises first, prev, next and last pages in page mode.
func writeLinks(w http.ResponseWriter, r *http.Request, window query.Window, total int) {
	pages, ok := window.Pages(total)
	if !ok {
		return
	}

	values := r.URL.Query()
	link := func(page int, rel string) string {
		values.Set(query.KeyPage, strconv.Itoa(page))
		u := url.URL{Path: r.URL.Path, RawQuery: values.Encode()}
		return fmt.Sprintf(`<%s>; rel="%s"`, u.String(), rel)
	}

	links := []string{link(pages.First, "first")}
	if pages.Prev > 0 {
		links = append(links, link(pages.Prev, "prev"))
	}
	if pages.Next > 0 {
		links = append(links, link(pages.Next, "next"))
	}
	links = append(links, link(pages.Last, "last"))

	w.Header().Set("Link", strings.Join(links, ", "))
}
