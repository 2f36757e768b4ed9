package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/modhaven/modhaven-go/client"
	"github.com/modhaven/modhaven-go/ident"
)

// GetPackage fetches metadata for a single package.
//
// pkg accepts any shape supported by ident.AsPackage:
//
//	a, err := api.GetPackage(ctx, "Kesomannen-GaleModManager")
//	b, err := api.GetPackage(ctx, [2]string{"Kesomannen", "GaleModManager"})
func (a *API) GetPackage(ctx context.Context, pkg any) (*Package, error) {
	id, err := ident.AsPackage(pkg)
	if err != nil {
		return nil, err
	}

	var p Package
	url := a.experimentalURL("package/" + id.Path())
	if err := a.http.GetJSON(ctx, url, &p); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, &client.NotFoundError{Resource: "package", Ident: id.String()}
		}
		return nil, err
	}
	return &p, nil
}

// GetVersion fetches metadata for a specific version of a package.
//
// version accepts any shape supported by ident.AsVersion.
func (a *API) GetVersion(ctx context.Context, version any) (*PackageVersion, error) {
	id, err := ident.AsVersion(version)
	if err != nil {
		return nil, err
	}

	var v PackageVersion
	url := a.experimentalURL("package/" + id.Path())
	if err := a.http.GetJSON(ctx, url, &v); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, &client.NotFoundError{Resource: "version", Ident: id.String()}
		}
		return nil, err
	}
	return &v, nil
}

// Changelog fetches the changelog of a specific version as markdown.
// A version without a changelog yields client.ErrNotFound.
func (a *API) Changelog(ctx context.Context, version any) (string, error) {
	return a.versionMarkdown(ctx, version, "changelog")
}

// Readme fetches the readme of a specific version as markdown.
func (a *API) Readme(ctx context.Context, version any) (string, error) {
	return a.versionMarkdown(ctx, version, "readme")
}

func (a *API) versionMarkdown(ctx context.Context, version any, kind string) (string, error) {
	id, err := ident.AsVersion(version)
	if err != nil {
		return "", err
	}

	var resp markdownResponse
	url := a.experimentalURL(fmt.Sprintf("package/%s/%s", id.Path(), kind))
	if err := a.http.GetJSON(ctx, url, &resp); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return "", &client.NotFoundError{Resource: kind, Ident: id.String()}
		}
		return "", err
	}
	return resp.Markdown, nil
}

// RenderMarkdown renders a markdown string to HTML using the instance's
// renderer.
func (a *API) RenderMarkdown(ctx context.Context, markdown string) (string, error) {
	var resp renderMarkdownResponse
	url := a.experimentalURL("frontend/render-markdown")
	if err := a.http.PostJSON(ctx, url, renderMarkdownParams{Markdown: markdown}, &resp); err != nil {
		return "", err
	}
	return resp.HTML, nil
}

// DownloadURL returns the archive download URL for a version.
func (a *API) DownloadURL(version any) (string, error) {
	id, err := ident.AsVersion(version)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/package/download/%s/", a.baseURL, id.Path()), nil
}

// Download fetches the ZIP archive of a version. The caller must close the
// returned body.
func (a *API) Download(ctx context.Context, version any) (io.ReadCloser, error) {
	url, err := a.DownloadURL(version)
	if err != nil {
		return nil, err
	}
	return a.http.GetStream(ctx, url)
}

// DownloadTo downloads the archive of a version into dir, named after the
// version identifier, and returns the written file path.
func (a *API) DownloadTo(ctx context.Context, version any, dir string) (string, error) {
	id, err := ident.AsVersion(version)
	if err != nil {
		return "", err
	}

	body, err := a.Download(ctx, id)
	if err != nil {
		return "", err
	}
	defer body.Close()

	path := filepath.Join(dir, id.String()+".zip")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
