package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeSection is a library section served by FakePlex.
type FakeSection struct {
	Key   string
	Title string
	Type  string
}

// FakeCollection is a collection served by FakePlex.
type FakeCollection struct {
	RatingKey string
	Title     string
	TitleSort string
}

// FakeImage is a poster FakePlex holds for a collection.
type FakeImage struct {
	ID       string
	Selected bool
}

// Request records one call FakePlex received.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   []byte
	Header http.Header

	// ContentLength is -1 for chunked bodies.
	ContentLength    int64
	TransferEncoding []string
}

// FakePlex is an in-memory Plex server for the endpoints postersync uses.
// Uploads are named upload://posters/<sha1> and become selected, like Plex.
type FakePlex struct {
	Server *httptest.Server
	Token  string

	mu          sync.Mutex
	sections    []FakeSection
	collections map[string][]FakeCollection
	images      map[string][]FakeImage
	requests    []Request
	failPaths   map[string]int
}

// NewFakePlex starts a fake server that accepts token and registers cleanup.
func NewFakePlex(t testing.TB, token string) *FakePlex {
	t.Helper()

	fp := &FakePlex{
		Token:       token,
		collections: make(map[string][]FakeCollection),
		images:      make(map[string][]FakeImage),
		failPaths:   make(map[string]int),
	}
	fp.Server = httptest.NewServer(http.HandlerFunc(fp.serve))
	t.Cleanup(fp.Server.Close)
	return fp
}

// URL returns the server base URL.
func (fp *FakePlex) URL() string { return fp.Server.URL }

// AddSection registers a section and its collections.
func (fp *FakePlex) AddSection(section FakeSection, collections ...FakeCollection) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.sections = append(fp.sections, section)
	fp.collections[section.Key] = append(fp.collections[section.Key], collections...)
}

// SetImages replaces the posters of a collection.
func (fp *FakePlex) SetImages(ratingKey string, images ...FakeImage) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.images[ratingKey] = append([]FakeImage(nil), images...)
}

// Images returns a copy of the posters of a collection.
func (fp *FakePlex) Images(ratingKey string) []FakeImage {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return append([]FakeImage(nil), fp.images[ratingKey]...)
}

// FailPath makes requests to path answer with status.
func (fp *FakePlex) FailPath(path string, status int) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.failPaths[path] = status
}

// Requests returns every request received so far.
func (fp *FakePlex) Requests() []Request {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return append([]Request(nil), fp.requests...)
}

// Mutations returns the POST and PUT requests received so far.
func (fp *FakePlex) Mutations() []Request {
	var out []Request
	for _, r := range fp.Requests() {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			out = append(out, r)
		}
	}
	return out
}

func (fp *FakePlex) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.requests = append(fp.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   body,
		Header: r.Header.Clone(),

		ContentLength:    r.ContentLength,
		TransferEncoding: append([]string(nil), r.TransferEncoding...),
	})

	if r.Header.Get("X-Plex-Token") != fp.Token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if status, ok := fp.failPaths[r.URL.Path]; ok {
		http.Error(w, "forced failure", status)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/library/sections":
		dirs := make([]map[string]any, 0, len(fp.sections))
		for _, s := range fp.sections {
			dirs = append(dirs, map[string]any{"key": s.Key, "title": s.Title, "type": s.Type})
		}
		writeContainer(w, map[string]any{"size": len(dirs), "Directory": dirs})
	case r.Method == http.MethodGet && len(parts) == 4 && parts[1] == "sections" && parts[3] == "collections":
		items := make([]map[string]any, 0)
		for _, c := range fp.collections[parts[2]] {
			item := map[string]any{
				"ratingKey": c.RatingKey,
				"type":      "collection",
				"title":     c.Title,
			}
			// Plex omits titleSort unless one was set.
			if c.TitleSort != "" {
				item["titleSort"] = c.TitleSort
			}
			items = append(items, item)
		}
		writeContainer(w, map[string]any{"size": len(items), "Metadata": items})
	case len(parts) == 4 && parts[1] == "metadata" && parts[3] == "posters" && r.Method == http.MethodGet:
		items := make([]map[string]any, 0)
		for _, img := range fp.images[parts[2]] {
			items = append(items, map[string]any{"ratingKey": img.ID, "key": img.ID, "selected": img.Selected})
		}
		writeContainer(w, map[string]any{"size": len(items), "Metadata": items})
	case len(parts) == 4 && parts[1] == "metadata" && parts[3] == "posters" && r.Method == http.MethodPost:
		id := UploadID(body)
		images := fp.images[parts[2]]
		for i := range images {
			images[i].Selected = false
		}
		fp.images[parts[2]] = append(images, FakeImage{ID: id, Selected: true})
		w.WriteHeader(http.StatusOK)
	case len(parts) == 4 && parts[1] == "metadata" && parts[3] == "poster" && r.Method == http.MethodPut:
		want := r.URL.Query().Get("url")
		images := fp.images[parts[2]]
		found := false
		for _, img := range images {
			found = found || img.ID == want
		}
		if !found {
			http.Error(w, "unknown image", http.StatusNotFound)
			return
		}
		for i := range images {
			images[i].Selected = images[i].ID == want
		}
		w.WriteHeader(http.StatusOK)
	default:
		http.NotFound(w, r)
	}
}

func writeContainer(w http.ResponseWriter, container map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"MediaContainer": container})
}
