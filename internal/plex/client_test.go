package plex

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"postersync/internal/config"
	"postersync/internal/poster"
	"postersync/internal/testsupport"
)

func newTestClient(t *testing.T, fp *testsupport.FakePlex, token string) *Client {
	t.Helper()
	return NewClient(Options{
		BaseURL:          fp.URL() + "/",
		Token:            token,
		ClientIdentifier: "client-123",
		HTTP:             fp.Server.Client(),
	})
}

func TestClientSendsStandardHeaders(t *testing.T) {
	fp := testsupport.NewFakePlex(t, "token-123")
	client := newTestClient(t, fp, "token-123")

	if err := client.CheckAuth(context.Background()); err != nil {
		t.Fatalf("CheckAuth returned error: %v", err)
	}

	reqs := fp.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected one request, got %d", len(reqs))
	}
	header := reqs[0].Header
	for key, want := range map[string]string{
		"X-Plex-Token":             "token-123",
		"X-Plex-Client-Identifier": "client-123",
		"X-Plex-Product":           "postersync",
		"Accept":                   "application/json",
	} {
		if got := header.Get(key); got != want {
			t.Fatalf("%s = %q, want %q", key, got, want)
		}
	}
	if reqs[0].Path != "/library/sections" {
		t.Fatalf("unexpected path %s", reqs[0].Path)
	}
}

func TestClientUnauthorized(t *testing.T) {
	fp := testsupport.NewFakePlex(t, "token-123")
	client := newTestClient(t, fp, "wrong")

	err := client.CheckAuth(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := client.ListImages(context.Background(), "1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized from ListImages, got %v", err)
	}
}

func TestClientErrorIncludesStatusAndExcerpt(t *testing.T) {
	fp := testsupport.NewFakePlex(t, "token-123")
	fp.FailPath("/library/metadata/7/posters", http.StatusInternalServerError)
	client := newTestClient(t, fp, "token-123")

	_, err := client.ListImages(context.Background(), "7")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "forced failure") {
		t.Fatalf("error should carry status and body excerpt: %v", err)
	}
}

func TestClientSectionsAndCollections(t *testing.T) {
	fp := testsupport.NewFakePlex(t, "token-123")
	fp.AddSection(testsupport.FakeSection{Key: "1", Title: "Movies", Type: "movie"},
		testsupport.FakeCollection{RatingKey: "101", Title: "Alien", TitleSort: "Alien"},
		testsupport.FakeCollection{RatingKey: "102", Title: "Batman"},
		testsupport.FakeCollection{RatingKey: "103", Title: "Best Of***"},
	)
	fp.AddSection(testsupport.FakeSection{Key: "2", Title: "TV", Type: "show"})
	client := newTestClient(t, fp, "token-123")

	scopes, err := client.Sections(context.Background())
	if err != nil {
		t.Fatalf("Sections returned error: %v", err)
	}
	if len(scopes) != 2 || scopes[0] != (poster.Scope{Key: "1", Title: "Movies", Type: "movie"}) {
		t.Fatalf("unexpected scopes %+v", scopes)
	}

	entities, err := client.Collections(context.Background(), scopes[0])
	if err != nil {
		t.Fatalf("Collections returned error: %v", err)
	}
	if len(entities) != 3 {
		t.Fatalf("expected 3 collections, got %d", len(entities))
	}
	if entities[0].ID != "101" || entities[0].Scope.Key != "1" {
		t.Fatalf("unexpected entity %+v", entities[0])
	}
	if entities[1].TitleSort != "" {
		t.Fatalf("titleSort should stay empty when Plex omits it, got %q", entities[1].TitleSort)
	}
	// The marker is read from titleSort only; a title ending in it does not skip.
	if entities[2].HasSkipMarker("***") {
		t.Fatalf("collection without titleSort treated as skipped: %+v", entities[2])
	}
}

func TestClientImageRoundTrip(t *testing.T) {
	fp := testsupport.NewFakePlex(t, "token-123")
	fp.SetImages("101", testsupport.FakeImage{ID: "https://metadata/a.jpg", Selected: true})
	client := newTestClient(t, fp, "token-123")
	ctx := context.Background()

	content := []byte("poster bytes")
	if err := client.UploadImage(ctx, "101", bytes.NewReader(content), int64(len(content))); err != nil {
		t.Fatalf("UploadImage returned error: %v", err)
	}
	uploads := fp.Mutations()
	if len(uploads) != 1 || !bytes.Equal(uploads[0].Body, content) || uploads[0].Query != "includeExternalMedia=1" {
		t.Fatalf("unexpected upload request %+v", uploads)
	}

	images, err := client.ListImages(ctx, "101")
	if err != nil {
		t.Fatalf("ListImages returned error: %v", err)
	}
	if len(images) != 2 || images[1].ID != testsupport.UploadID(content) || !images[1].Selected {
		t.Fatalf("unexpected images %+v", images)
	}

	if err := client.SelectImage(ctx, "101", "https://metadata/a.jpg"); err != nil {
		t.Fatalf("SelectImage returned error: %v", err)
	}
	images, err = client.ListImages(ctx, "101")
	if err != nil {
		t.Fatalf("ListImages returned error: %v", err)
	}
	if !images[0].Selected || images[1].Selected {
		t.Fatalf("selection not applied: %+v", images)
	}
}

func TestClientRateLimitHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":0}}`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, Token: "t", RequestsPerSecond: 0.001, HTTP: server.Client()})
	if err := client.CheckAuth(context.Background()); err != nil {
		t.Fatalf("first request should pass the bucket: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := client.CheckAuth(ctx); err == nil {
		t.Fatal("expected paced request to fail once the context expires")
	}
}

func TestNewFromConfigRequiresServer(t *testing.T) {
	cfg := config.Default()
	if _, err := NewFromConfig(&cfg, nil); !errors.Is(err, config.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	cfg.Plex.URL = "http://plex:32400/"
	cfg.Plex.Token = "abc"
	client, err := NewFromConfig(&cfg, nil)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if client.BaseURL() != "http://plex:32400" {
		t.Fatalf("BaseURL = %s", client.BaseURL())
	}
}

func TestClientUploadSendsContentLength(t *testing.T) {
	fp := testsupport.NewFakePlex(t, "token-123")
	client := newTestClient(t, fp, "token-123")
	content := []byte("poster from disk")
	path := testsupport.WritePoster(t, t.TempDir(), "1-Movies", "Alien.jpg", content)

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open poster: %v", err)
	}
	defer file.Close()
	if err := client.UploadImage(context.Background(), "101", file, int64(len(content))); err != nil {
		t.Fatalf("UploadImage returned error: %v", err)
	}

	uploads := fp.Mutations()
	if len(uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(uploads))
	}
	if uploads[0].ContentLength != int64(len(content)) || len(uploads[0].TransferEncoding) != 0 {
		t.Fatalf("upload sent ContentLength=%d TransferEncoding=%v, want %d and none",
			uploads[0].ContentLength, uploads[0].TransferEncoding, len(content))
	}
	if !bytes.Equal(uploads[0].Body, content) {
		t.Fatalf("unexpected upload body %q", uploads[0].Body)
	}
}

func TestClientUploadEmptyBody(t *testing.T) {
	fp := testsupport.NewFakePlex(t, "token-123")
	client := newTestClient(t, fp, "token-123")

	if err := client.UploadImage(context.Background(), "101", strings.NewReader(""), 0); err != nil {
		t.Fatalf("UploadImage returned error: %v", err)
	}
	uploads := fp.Mutations()
	if len(uploads) != 1 || uploads[0].ContentLength != 0 || len(uploads[0].TransferEncoding) != 0 {
		t.Fatalf("unexpected empty upload %+v", uploads)
	}
}
