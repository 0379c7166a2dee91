package domain

// FeedPage is one page of a user's reverse-chronological feed.
type FeedPage struct {
	Items   []FeedItem
	Page    int
	HasNext bool
	HasPrev bool
}
