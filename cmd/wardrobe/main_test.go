package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/parquet-go/parquet-go"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// clearEnv blanks every WARDROBE_* variable so the host cannot leak into a run.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"WARDROBE_BACKEND", "WARDROBE_DATA_DIR", "WARDROBE_SLOT", "WARDROBE_DATABASE_URL",
		"WARDROBE_LOG_LEVEL", "WARDROBE_LOG_FORMAT", "WARDROBE_MAX_BYTES",
		"WARDROBE_IMAGE_MAX_DIMENSION", "WARDROBE_IMAGE_QUALITY", "DATABASE_URL",
	} {
		t.Setenv(k, "")
	}
}

// execute runs a fresh root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// wardrobe runs the CLI against a file catalog in dir and returns stdout.
func wardrobe(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)
	return execute(t, append([]string{"--backend", "file", "--data-dir", dir}, args...)...)
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := wardrobe(t, dir, args...)
	if err != nil {
		t.Fatalf("wardrobe %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// mustAddID runs a command that prints a new id and returns it.
func mustAddID(t *testing.T, dir string, args ...string) string {
	t.Helper()
	id := strings.TrimSpace(mustRun(t, dir, args...))
	if id == "" {
		t.Fatalf("wardrobe %s printed no id", strings.Join(args, " "))
	}
	return id
}

func mustContain(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func mustFail(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if err == nil || !strings.Contains(err.Error(), wantSubstr) {
		t.Errorf("err = %v, want it to contain %q", err, wantSubstr)
	}
}

// ─── Items ───────────────────────────────────────────────────────────────────

func TestItemLifecycle(t *testing.T) {
	dir := t.TempDir()

	id := mustAddID(t, dir, "item", "add", "--category", "Shirts", "--color", "navy", "--notes", "linen")

	out := mustRun(t, dir, "item", "show", id)
	mustContain(t, out, "category: Shirts", "color:    navy")

	mustRun(t, dir, "item", "edit", id, "--color", "white", "--notes", "")
	out = mustRun(t, dir, "item", "show", id)
	mustContain(t, out, "color:    white", "category: Shirts", "notes:    \n")

	mustRun(t, dir, "item", "rm", id)
	_, err := wardrobe(t, dir, "item", "show", id)
	mustFail(t, err, "not found")
}

func TestItemEdit_NothingToChange(t *testing.T) {
	dir := t.TempDir()
	id := mustAddID(t, dir, "item", "add")

	_, err := wardrobe(t, dir, "item", "edit", id)
	mustFail(t, err, "nothing to change")
}

func TestItemList_Filters(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "item", "add", "--category", "Shirts", "--color", "Navy")
	mustRun(t, dir, "item", "add", "--category", "Pants", "--color", "navy")
	mustRun(t, dir, "item", "add", "--color", "red")

	out := mustRun(t, dir, "item", "list", "--search", "NAVY", "--category", "Pants")
	mustContain(t, out, "Pants")
	if strings.Contains(out, "Shirts") {
		t.Errorf("category filter let Shirts through:\n%s", out)
	}

	out = mustRun(t, dir, "item", "list", "--grouped")
	mustContain(t, out, "Shirts (1)", "Pants (1)", catalog.UncategorizedLabel+" (1)")
	if strings.Index(out, "Shirts (1)") > strings.Index(out, "Pants (1)") {
		t.Errorf("groups should follow first appearance:\n%s", out)
	}
}

// ─── Combinations ────────────────────────────────────────────────────────────

func TestComboLifecycle(t *testing.T) {
	dir := t.TempDir()
	shirt := mustAddID(t, dir, "item", "add", "--category", "Shirts", "--color", "white")
	pants := mustAddID(t, dir, "item", "add", "--category", "Pants", "--color", "grey")

	_, err := wardrobe(t, dir, "combo", "add", "ghost")
	mustFail(t, err, "not found")

	combo := mustAddID(t, dir, "combo", "add", "--name", "Office", "--tags", " work, ,formal ", shirt, pants)

	mustRun(t, dir, "item", "rm", pants)

	out := mustRun(t, dir, "combo", "list", "--tag", "work")
	mustContain(t, out, "Office  [work, formal]", "Shirts white", "1 item(s) no longer in the wardrobe")
	if strings.Contains(out, "grey") {
		t.Errorf("deleted item should not be listed:\n%s", out)
	}

	out = mustRun(t, dir, "stats")
	mustContain(t, out, "Items:       1", "Outfits:     1", "Missing outfit items: 1")

	mustRun(t, dir, "combo", "rm", combo)
	if out := mustRun(t, dir, "combo", "list"); out != "" {
		t.Errorf("combo list after rm = %q, want empty", out)
	}
}

// ─── Export ──────────────────────────────────────────────────────────────────

func TestExport(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "item", "add", "--category", "Coats")
	id := mustAddID(t, dir, "item", "add", "--category", "Hats")
	mustRun(t, dir, "combo", "add", id)

	out := mustRun(t, dir, "export")
	var doc catalog.Catalog
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if len(doc.Items) != 2 || len(doc.Combinations) != 1 {
		t.Errorf("exported %d items, %d combinations; want 2, 1", len(doc.Items), len(doc.Combinations))
	}

	pq := filepath.Join(t.TempDir(), "pq")
	mustRun(t, dir, "export", "--format", "parquet", "--out", pq)

	f, err := os.Open(filepath.Join(pq, "items.parquet"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if pf.NumRows() != 2 {
		t.Errorf("items.parquet rows = %d, want 2", pf.NumRows())
	}
	if _, err := os.Stat(filepath.Join(pq, "combinations.parquet")); err != nil {
		t.Errorf("combinations.parquet: %v", err)
	}

	_, err = wardrobe(t, dir, "export", "--format", "xml")
	mustFail(t, err, "unknown format")
}

// ─── Configuration ──────────────────────────────────────────────────────────

func TestRoot_InvalidBackend(t *testing.T) {
	_, err := wardrobe(t, t.TempDir(), "--backend", "floppy", "stats")
	mustFail(t, err, "storage.backend")
}

func TestRoot_FlagOverridesInvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("WARDROBE_BACKEND", "postgres")

	out, err := execute(t, "--backend", "memory", "stats")
	if err != nil {
		t.Fatalf("--backend memory should win over WARDROBE_BACKEND=postgres: %v", err)
	}
	mustContain(t, out, "Items:       0")
}

func TestRoot_InvalidEnvWithoutFlagFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("WARDROBE_BACKEND", "postgres")

	_, err := execute(t, "stats")
	mustFail(t, err, "database_url")
}
