package poster

import "strings"

const (
	// UploadPrefix marks images uploaded by this tool; the suffix is the
	// SHA-1 of the uploaded bytes.
	UploadPrefix = "upload://posters/"
	// DefaultImageID is the placeholder poster Plex generates for collections.
	DefaultImageID = "default://"
)

// Scope is a Plex library section processed as one batch.
type Scope struct {
	Key   string
	Title string
	Type  string
}

// DirName returns the directory holding the scope's posters: "<key>-<title>".
func (s Scope) DirName() string {
	return s.Key + "-" + s.Title
}

// Entity is a collection whose poster is being synchronized.
type Entity struct {
	ID        string
	Title     string
	TitleSort string
	Scope     Scope
}

// HasSkipMarker reports whether the entity's sort title ends with marker.
func (e Entity) HasSkipMarker(marker string) bool {
	return marker != "" && strings.HasSuffix(e.TitleSort, marker)
}

// RemoteImage is one poster Plex holds for an entity.
type RemoteImage struct {
	ID       string
	Selected bool
}

// Uploaded reports whether the image lives in this tool's upload namespace.
func (img RemoteImage) Uploaded() bool {
	return strings.HasPrefix(img.ID, UploadPrefix)
}

// IsDefault reports whether the image is Plex's generated placeholder.
func (img RemoteImage) IsDefault() bool {
	return img.ID == DefaultImageID
}

// UploadID returns the image id Plex assigns to an upload with the given hash.
func UploadID(hash string) string {
	return UploadPrefix + hash
}

// Candidate is a resolved local poster and its content identity.
type Candidate struct {
	Path string
	Hash string
}
