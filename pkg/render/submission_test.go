package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelform/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "token123"),
		render.AuthToken(" auth_token ", "abc123"),
		render.VersionField("version", 4),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing":   "keep",
		"_csrf":      "token123",
		"auth_token": "abc123",
		"version":    "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "auth_token", Value: "abc123"},
		{Name: "existing", Value: "keep"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestHiddenInputs(t *testing.T) {
	got := render.HiddenInputs(
		render.VersionField("version", 3),
		render.CSRFToken("_csrf", `a"b`),
	)
	want := `<input type="hidden" name="_csrf" value="a&quot;b" />` +
		`<input type="hidden" name="version" value="3" />`
	if got != want {
		t.Fatalf("hidden inputs mismatch\nwant: %s\n got: %s", want, got)
	}
	if render.HiddenInputs() != "" {
		t.Fatalf("expected no markup without hidden fields")
	}
}
