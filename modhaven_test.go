package modhaven_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/modhaven/modhaven-go"
)

func TestNewDefaults(t *testing.T) {
	api := modhaven.New("", nil)
	if api.BaseURL() != modhaven.DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", api.BaseURL(), modhaven.DefaultBaseURL)
	}
}

func TestIntegration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/experimental/package/Evaisa/LethalLib/" {
			resp := map[string]interface{}{
				"full_name":       "Evaisa-LethalLib",
				"total_downloads": 8500000,
				"latest": map[string]interface{}{
					"full_name":    "Evaisa-LethalLib-0.16.0",
					"dependencies": []string{"BepInEx-BepInExPack-5.4.2100"},
				},
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		w.WriteHeader(404)
	}))
	defer server.Close()

	api := modhaven.New(server.URL, modhaven.DefaultClient())

	pkg, err := api.GetPackage(context.Background(), "Evaisa-LethalLib")
	if err != nil {
		t.Fatalf("GetPackage failed: %v", err)
	}
	if pkg.Ident.Namespace() != "Evaisa" {
		t.Errorf("namespace = %q", pkg.Ident.Namespace())
	}
	if pkg.Latest.Ident.Version() != "0.16.0" {
		t.Errorf("latest = %q", pkg.Latest.Ident.Version())
	}

	_, err = api.GetPackage(context.Background(), "Evaisa-DoesNotExist")
	if !errors.Is(err, modhaven.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIdentReExports(t *testing.T) {
	pkg := modhaven.NewPackage("Evaisa", "LethalLib")
	if pkg.String() != "Evaisa-LethalLib" {
		t.Errorf("package = %q", pkg)
	}

	version, err := modhaven.ParseVersion("Evaisa-LethalLib-0.16.0")
	if err != nil {
		t.Fatalf("ParseVersion failed: %v", err)
	}
	if !version.Package().Equal(pkg) {
		t.Errorf("package of %q = %q", version, version.Package())
	}

	if _, err := modhaven.ParsePackage("nodash"); !errors.Is(err, modhaven.ErrInvalidIdent) {
		t.Errorf("expected ErrInvalidIdent, got %v", err)
	}
}

func TestSiteURLs(t *testing.T) {
	api := modhaven.New("", nil)
	urls := modhaven.BuildURLs(api.URLs("lethal-company"), "Evaisa", "LethalLib", "0.16.0")

	if got, want := urls["page"], "https://modhaven.io/c/lethal-company/p/Evaisa/LethalLib/v/0.16.0/"; got != want {
		t.Errorf("page = %q, want %q", got, want)
	}
	if got, want := urls["download"], "https://modhaven.io/package/download/Evaisa/LethalLib/0.16.0/"; got != want {
		t.Errorf("download = %q, want %q", got, want)
	}
	if got, want := urls["purl"], "pkg:modhaven/Evaisa/LethalLib@0.16.0"; got != want {
		t.Errorf("purl = %q, want %q", got, want)
	}
}

func TestPackageFromPURL(t *testing.T) {
	pkg, err := modhaven.PackageFromPURL("pkg:modhaven/Evaisa/LethalLib")
	if err != nil {
		t.Fatalf("PackageFromPURL failed: %v", err)
	}
	if pkg.String() != "Evaisa-LethalLib" {
		t.Errorf("package = %q", pkg)
	}

	if _, err := modhaven.PackageFromPURL("pkg:cargo/serde"); !errors.Is(err, modhaven.ErrInvalidIdent) {
		t.Errorf("expected ErrInvalidIdent for foreign type, got %v", err)
	}
}

func TestVersionFromPURL(t *testing.T) {
	version, err := modhaven.VersionFromPURL("pkg:modhaven/Evaisa/LethalLib@0.16.0")
	if err != nil {
		t.Fatalf("VersionFromPURL failed: %v", err)
	}
	if version.String() != "Evaisa-LethalLib-0.16.0" {
		t.Errorf("version = %q", version)
	}

	if _, err := modhaven.VersionFromPURL("pkg:modhaven/Evaisa/LethalLib"); !errors.Is(err, modhaven.ErrInvalidIdent) {
		t.Errorf("expected ErrInvalidIdent without version, got %v", err)
	}
}

func TestConstants(t *testing.T) {
	if modhaven.ReviewApproved != "approved" {
		t.Errorf("ReviewApproved constant mismatch")
	}
	if modhaven.StagingBaseURL != "https://staging.modhaven.io" {
		t.Errorf("StagingBaseURL constant mismatch")
	}
}
