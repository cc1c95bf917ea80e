package domain

// Media kinds used to disambiguate bookmark identity together with the
// catalog id.
const (
	MediaKindMovie = "movie"
	MediaKindTV    = "tv"
)

// Profile is the per-user document stored in Firestore under users/{uid}.
// It is created once at session registration and mutated by the bookmark
// and profile-edit flows.
type Profile struct {
	FirstName string     `firestore:"firstName" json:"firstName"`
	LastName  string     `firestore:"lastName" json:"lastName"`
	PhotoURL  string     `firestore:"photoURL" json:"photoURL"`
	Bookmarks []Bookmark `firestore:"bookmarks" json:"bookmarks"`
}

// Bookmark is a saved reference to a movie or TV title. Two bookmarks are
// the same entry when type and id match; the descriptive fields trail along
// for list rendering. Store-level add/remove match the full value, so a
// drifted vote_average will not match on removal (see DESIGN.md).
type Bookmark struct {
	Type        string `firestore:"type" json:"type"`
	ID          string `firestore:"id" json:"id"`
	Title       string `firestore:"title" json:"title"`
	PosterPath  string `firestore:"poster_path" json:"poster_path"`
	VoteAverage string `firestore:"vote_average" json:"vote_average"`
}

// SameEntry reports whether two bookmarks refer to the same title.
func (b Bookmark) SameEntry(other Bookmark) bool {
	return b.Type == other.Type && b.ID == other.ID
}
