package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DOCUMENT_STORE", "disk")
	t.Setenv("BLOB_STORE", "disk")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("PUBLIC_BASE_URL", "http://localhost:8080")
	t.Setenv("LOG_DIR", "")
	t.Setenv("DEV_USER_ID", "")
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEditShowDelete(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "", "edit", "2024-03-01", "--title", "Day One", "--content", "draft")
	if err != nil {
		t.Fatalf("edit error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Journal saved successfully!") {
		t.Errorf("edit output = %q", out)
	}

	out, err = run(t, "", "show", "2024-03-01")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	for _, want := range []string{"Friday, March 1, 2024", "Day One", "draft"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}

	// Fields not given keep their stored value
	if _, err := run(t, "", "edit", "2024-03-01", "--content", "final"); err != nil {
		t.Fatalf("second edit error = %v", err)
	}
	out, _ = run(t, "", "show", "2024-03-01")
	if !strings.Contains(out, "Day One") || !strings.Contains(out, "final") {
		t.Errorf("show after partial edit:\n%s", out)
	}

	out, err = run(t, "n\n", "delete", "2024-03-01")
	if err != nil || !strings.Contains(out, "Cancelled.") {
		t.Fatalf("declined delete = %q, %v", out, err)
	}

	out, err = run(t, "", "delete", "2024-03-01", "--yes")
	if err != nil || !strings.Contains(out, "Journal entry deleted successfully!") {
		t.Fatalf("delete = %q, %v", out, err)
	}

	out, _ = run(t, "", "show", "2024-03-01")
	if !strings.Contains(out, "No journal entry") {
		t.Errorf("show after delete = %q", out)
	}
}

func TestEditValidation(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "", "edit", "2024-03-02", "--title", "only a title")
	if err == nil {
		t.Fatal("edit without content should fail")
	}
	if !strings.Contains(out, "Please fill in the title and content.") {
		t.Errorf("output = %q", out)
	}
}

func TestEditWithImage(t *testing.T) {
	dir := setupEnv(t)
	img := filepath.Join(t.TempDir(), "whiteboard.png")
	if err := os.WriteFile(img, []byte("\x89PNG\r\n\x1a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "edit", "2024-03-03", "--title", "t", "--content", "c", "--image", img)
	if err != nil {
		t.Fatalf("edit error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "http://localhost:8080/files/images/whiteboard.png") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "blobs", "images", "whiteboard.png")); err != nil {
		t.Errorf("uploaded blob missing: %v", err)
	}
}

func TestDateArgs(t *testing.T) {
	for _, arg := range []string{"today", "yesterday", "2024-03-01"} {
		if err := dateArgs(nil, []string{arg}); err != nil {
			t.Errorf("dateArgs(%q) error = %v", arg, err)
		}
	}
	for _, args := range [][]string{nil, {"soon"}, {"2024-03-01", "2024-03-02"}} {
		if err := dateArgs(nil, args); err == nil {
			t.Errorf("dateArgs(%q) should fail", args)
		}
	}
}

func TestIcon(t *testing.T) {
	out, err := run(t, "", "icon", "home", "--size", "32")
	if err != nil {
		t.Fatalf("icon error = %v", err)
	}
	if !strings.HasPrefix(out, "<svg") || !strings.Contains(out, `width="32"`) {
		t.Errorf("icon output = %q", out)
	}

	if _, err := run(t, "", "icon", "missing"); err == nil {
		t.Error("unknown icon should fail")
	}
}
