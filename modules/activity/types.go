package activity

// RecentActivityRequest asks for the newest entries of an owner's feed.
type RecentActivityRequest struct {
	OwnerID string `json:"owner_id"`
	Limit   int    `json:"limit"`
}

// RecentActivityResponse carries feed entries, newest first.
type RecentActivityResponse struct {
	Entries []Entry `json:"entries"`
}
