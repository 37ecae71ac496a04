package validate_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/alnah/go-md2docx/internal/validate"
)

// ---------------------------------------------------------------------------
// TestCheckMarkdownLinks - Relative link targets
// ---------------------------------------------------------------------------

func TestCheckMarkdownLinks(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"README.md": "# Docs\n\n" +
			"See [SRS](docs/srs.md), [design](docs/sdd.md#arch) and [assets](docs/).\n\n" +
			"![diagram](img/flow.png)\n\n" +
			"[external](https://example.com) [anchor](#docs) [mail](mailto:qa@example.com)\n",
		"docs/srs.md": "Back to [readme](../README.md). Broken: [rtm](rtm.md).\n\n" +
			"```\n[not a link](nowhere.md)\n```\n",
		"docs/sdd.md":  "# SDD\n",
		"img/flow.png": "png",
	})

	report, err := validate.CheckMarkdownLinks(context.Background(), root)
	if err != nil {
		t.Fatalf("CheckMarkdownLinks() error = %v", err)
	}

	if report.Files != 3 {
		t.Errorf("Files = %d, want 3", report.Files)
	}
	if report.Links != 6 {
		t.Errorf("Links = %d, want 6", report.Links)
	}
	want := []validate.MissingRef{
		{Source: "docs/srs.md", Ref: "rtm.md", Target: "docs/rtm.md", Reason: validate.ReasonNotFound},
	}
	if !reflect.DeepEqual(report.Missing, want) {
		t.Errorf("Missing = %+v, want %+v", report.Missing, want)
	}
	if report.Passed() {
		t.Error("Passed() = true, want false")
	}
}

func TestCheckMarkdownLinks_NoFiles(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"index.html": "<p>hi</p>"})
	report, err := validate.CheckMarkdownLinks(context.Background(), root)
	if err != nil {
		t.Fatalf("CheckMarkdownLinks() error = %v", err)
	}
	if report.Files != 0 || !report.Passed() {
		t.Errorf("Files = %d, Passed = %v, want 0, true", report.Files, report.Passed())
	}
}

func TestCheckMarkdownLinks_SkipsNodeModules(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"doc.md":                     "[ok](doc.md)\n",
		"node_modules/pkg/README.md": "[broken](nope.md)\n",
	})
	report, err := validate.CheckMarkdownLinks(context.Background(), root)
	if err != nil {
		t.Fatalf("CheckMarkdownLinks() error = %v", err)
	}
	if report.Files != 1 || !report.Passed() {
		t.Errorf("Files = %d, Missing = %+v, want 1 file and none missing", report.Files, report.Missing)
	}
}
