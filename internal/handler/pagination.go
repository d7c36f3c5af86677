package handler

import (
	"net/http"
	"strconv"
)

const MaxLimit = 100

// PageParams carries limit plus the opaque cursor for feed-style listings.
type PageParams struct {
	Limit int
	After string
}

func ParsePage(r *http.Request, defaultLimit int) PageParams {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > MaxLimit {
		limit = defaultLimit
	}

	return PageParams{
		Limit: limit,
		After: r.URL.Query().Get("after"),
	}
}
