package plex

import (
	"net/http"
	"net/url"
)

// Kind names a Plex operation the client issues.
type Kind int

const (
	KindSections Kind = iota
	KindCollections
	KindListImages
	KindUploadImage
	KindSelectImage
)

func (k Kind) String() string {
	switch k {
	case KindSections:
		return "sections"
	case KindCollections:
		return "collections"
	case KindListImages:
		return "list_images"
	case KindUploadImage:
		return "upload_image"
	case KindSelectImage:
		return "select_image"
	default:
		return "unknown"
	}
}

// Endpoint describes one Plex request. Building URLs from typed fields
// keeps ids out of format strings and escapes image ids in queries.
type Endpoint struct {
	Kind       Kind
	SectionKey string
	EntityID   string
	ImageID    string
}

// Method returns the HTTP method for the endpoint.
func (e Endpoint) Method() string {
	switch e.Kind {
	case KindUploadImage:
		return http.MethodPost
	case KindSelectImage:
		return http.MethodPut
	default:
		return http.MethodGet
	}
}

// Path returns the request path below the server base URL.
func (e Endpoint) Path() string {
	switch e.Kind {
	case KindSections:
		return "/library/sections"
	case KindCollections:
		return "/library/sections/" + url.PathEscape(e.SectionKey) + "/collections"
	case KindListImages, KindUploadImage:
		return "/library/metadata/" + url.PathEscape(e.EntityID) + "/posters"
	case KindSelectImage:
		return "/library/metadata/" + url.PathEscape(e.EntityID) + "/poster"
	default:
		return "/"
	}
}

// Query returns the encoded query string, without the leading '?'.
func (e Endpoint) Query() string {
	switch e.Kind {
	case KindListImages:
		// Plex answers the poster listing with an empty url parameter.
		return "url="
	case KindUploadImage:
		return url.Values{"includeExternalMedia": {"1"}}.Encode()
	case KindSelectImage:
		return url.Values{"url": {e.ImageID}}.Encode()
	default:
		return ""
	}
}

// URL joins base with the endpoint path and query.
func (e Endpoint) URL(base string) string {
	target := base + e.Path()
	if q := e.Query(); q != "" {
		target += "?" + q
	}
	return target
}
