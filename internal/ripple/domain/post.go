package domain

import "time"

// MaxPostBodyLen bounds the length of a post body in runes.
const MaxPostBodyLen = 140

// Post is an append-only status update. The author is set at creation and
// never changes; posts are never edited or deleted.
type Post struct {
	ID        string
	AuthorID  string
	Body      string
	Language  string // best-effort detected tag, "" when detection failed
	CreatedAt time.Time
}

// FeedItem is a post joined with the author fields the caller renders.
type FeedItem struct {
	Post
	AuthorUsername string
	AuthorEmail    string
}
