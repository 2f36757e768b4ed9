package core

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/modhaven/modhaven-go/ident"
)

// Wikis fetches an index of all package wikis on the instance.
func (a *API) Wikis(ctx context.Context) (*WikisResponse, error) {
	var resp WikisResponse
	if err := a.http.GetJSON(ctx, a.experimentalURL("package/wikis"), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Wiki fetches the wiki of a specific package.
func (a *API) Wiki(ctx context.Context, pkg any) (*Wiki, error) {
	url, err := a.wikiURL(pkg)
	if err != nil {
		return nil, err
	}

	var w Wiki
	if err := a.http.GetJSON(ctx, url, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// WikiPage fetches a single wiki page by its id, including its content.
func (a *API) WikiPage(ctx context.Context, id string) (*WikiPage, error) {
	var p WikiPage
	if err := a.http.GetJSON(ctx, a.experimentalURL("wiki/page/"+id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateWikiPage creates a page on a package's wiki.
// Requires an API token on the client.
func (a *API) CreateWikiPage(ctx context.Context, pkg any, title, content string) (*WikiPage, error) {
	return a.upsertWikiPage(ctx, pkg, wikiPageUpsert{Title: title, Content: content})
}

// UpdateWikiPage updates an existing page on a package's wiki.
// Requires an API token on the client.
func (a *API) UpdateWikiPage(ctx context.Context, pkg any, id, title, content string) (*WikiPage, error) {
	return a.upsertWikiPage(ctx, pkg, wikiPageUpsert{ID: id, Title: title, Content: content})
}

func (a *API) upsertWikiPage(ctx context.Context, pkg any, upsert wikiPageUpsert) (*WikiPage, error) {
	url, err := a.wikiURL(pkg)
	if err != nil {
		return nil, err
	}

	var page WikiPage
	if err := a.http.PostJSON(ctx, url, upsert, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteWikiPage deletes a page from a package's wiki.
// Requires an API token on the client.
func (a *API) DeleteWikiPage(ctx context.Context, pkg any, id string) error {
	url, err := a.wikiURL(pkg)
	if err != nil {
		return err
	}

	body, err := json.Marshal(wikiPageDelete{ID: id})
	if err != nil {
		return err
	}

	header := http.Header{"Content-Type": []string{"application/json"}}
	resp, err := a.http.Do(ctx, http.MethodDelete, url, body, header)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (a *API) wikiURL(pkg any) (string, error) {
	id, err := ident.AsPackage(pkg)
	if err != nil {
		return "", err
	}
	return a.experimentalURL("package/" + id.Path() + "/wiki"), nil
}
