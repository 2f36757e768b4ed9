package core

import (
	"context"
	"net/url"
)

// CursorState is returned by paginated endpoints and used to navigate
// between pages by passing its fields back as the cursor parameter.
type CursorState struct {
	Next string
	Prev string
}

func cursorState(p Pagination) CursorState {
	return CursorState{
		Next: cursorOf(p.NextLink),
		Prev: cursorOf(p.PreviousLink),
	}
}

func cursorOf(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Query().Get("cursor")
}

// Communities fetches a page of communities. Pass an empty cursor for the
// first page.
func (a *API) Communities(ctx context.Context, cursor string) (CursorState, []Community, error) {
	target := a.experimentalURL("community")
	if cursor != "" {
		target += "?cursor=" + url.QueryEscape(cursor)
	}

	var resp paginated[Community]
	if err := a.http.GetJSON(ctx, target, &resp); err != nil {
		return CursorState{}, nil, err
	}
	return cursorState(resp.Pagination), resp.Results, nil
}

// Categories fetches a page of listing categories from the given
// community. Pass an empty cursor for the first page.
func (a *API) Categories(ctx context.Context, community, cursor string) (CursorState, []CommunityCategory, error) {
	target := a.experimentalURL("community/" + community + "/category")
	if cursor != "" {
		target += "?cursor=" + url.QueryEscape(cursor)
	}

	var resp paginated[CommunityCategory]
	if err := a.http.GetJSON(ctx, target, &resp); err != nil {
		return CursorState{}, nil, err
	}
	return cursorState(resp.Pagination), resp.Results, nil
}

// CurrentCommunity fetches the start community of the instance's base URL.
func (a *API) CurrentCommunity(ctx context.Context) (*Community, error) {
	var c Community
	if err := a.http.GetJSON(ctx, a.experimentalURL("current-community"), &c); err != nil {
		return nil, err
	}
	return &c, nil
}
