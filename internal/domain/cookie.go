package domain

import "time"

// Cookie is one stored Instagram session credential: the raw "k=v; k=v"
// cookie string usable to authenticate as the owning Account. An account can
// hold several (e.g. refreshed sessions); dispatch picks the oldest one.
type Cookie struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"accountId"`
	Value     string    `json:"cookieValue"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
