package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/rclayout/pkg/form"
)

const dialogsJSON = `{
  "forms": [
    {
      "id": "IDD_ABOUT",
      "kind": "dialog",
      "caption": "About",
      "rect": {"left": 0, "top": 0, "width": 200, "height": 100},
      "controls": [
        {"id": "IDC_NAME_LABEL", "kind": "LTEXT", "label": "Name:", "rect": {"left": 10, "top": 10, "width": 40, "height": 8}},
        {"id": "IDC_NAME", "kind": "edit", "rect": {"left": 60, "top": 10, "width": 100, "height": 12}},
        {"id": "IDOK", "kind": "button", "label": "OK", "default": true, "rect": {"left": 90, "top": 80, "width": 50, "height": 14}},
        {"id": "IDCANCEL", "kind": "button", "label": "Cancel", "rect": {"left": 145, "top": 80, "width": 50, "height": 14}}
      ]
    },
    {
      "id": "IDD_LOGIN",
      "kind": "dialog",
      "rect": {"left": 0, "top": 0, "width": 180, "height": 60},
      "controls": [
        {"id": "IDC_USER", "kind": "edit", "rect": {"left": 10, "top": 10, "width": 160, "height": 12}},
        {"id": "IDC_PASS", "kind": "edit", "rect": {"left": 10, "top": 30, "width": 160, "height": 12}}
      ]
    }
  ]
}`

// testEnv isolates config and cache lookups in temporary directories.
func testEnv(t *testing.T) (dir string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, k := range []string{"RCLAYOUT_CACHE_BACKEND", "RCLAYOUT_STORE_BACKEND", "RCLAYOUT_LOG_LEVEL", "RCLAYOUT_LOG_FILE"} {
		t.Setenv(k, "")
	}
	return t.TempDir()
}

func writeForms(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "dialogs.json")
	if err := os.WriteFile(path, []byte(dialogsJSON), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the root command and returns what it wrote to its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := newTestCLI()
	defer c.Close()
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()
	for _, name := range []string{"layout", "render", "inspect", "serve", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := testEnv(t)
	input := writeForms(t, dir)

	if _, err := run(t, "layout", input, "--form", "IDD_ABOUT"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	l, err := form.ReadLayoutFile(filepath.Join(dir, "dialogs.layout.json"))
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if l.Form != "IDD_ABOUT" || l.Class != "About" {
		t.Errorf("layout = %s/%s, want IDD_ABOUT/About", l.Form, l.Class)
	}
	if len(l.Controls) != 4 {
		t.Errorf("controls = %d, want 4", len(l.Controls))
	}
}

func TestLayoutCommandMultipleForms(t *testing.T) {
	dir := testEnv(t)
	input := writeForms(t, dir)

	if _, err := run(t, "layout", input, "-o", filepath.Join(dir, "out")); err != nil {
		t.Fatalf("layout: %v", err)
	}
	for _, id := range []string{"IDD_ABOUT", "IDD_LOGIN"} {
		path := filepath.Join(dir, "out_"+id+".layout.json")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing %s: %v", path, err)
		}
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	dir := testEnv(t)
	input := writeForms(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"layout", filepath.Join(dir, "none.json")}},
		{"unknown form", []string{"layout", input, "--form", "IDD_NOPE"}},
		{"unsupported extension", []string{"layout", filepath.Join(dir, "dialogs.rc")}},
		{"no args", []string{"layout"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	dir := testEnv(t)
	input := writeForms(t, dir)

	if _, err := run(t, "render", input, "--form", "IDD_LOGIN", "-f", "dot,text"); err != nil {
		t.Fatalf("render: %v", err)
	}

	dot, err := os.ReadFile(filepath.Join(dir, "dialogs.dot"))
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if !strings.Contains(string(dot), "digraph") {
		t.Errorf("dot output does not look like a graph: %.60q", dot)
	}
	txt, err := os.ReadFile(filepath.Join(dir, "dialogs.txt"))
	if err != nil {
		t.Fatalf("read text: %v", err)
	}
	if len(txt) == 0 {
		t.Error("empty text artifact")
	}
}

func TestRenderFromLayoutFileToStdout(t *testing.T) {
	dir := testEnv(t)
	input := writeForms(t, dir)

	if _, err := run(t, "layout", input, "--form", "IDD_ABOUT"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	out, err := run(t, "render", filepath.Join(dir, "dialogs.layout.json"), "-f", "json", "-o", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	l, err := form.UnmarshalLayout([]byte(out))
	if err != nil {
		t.Fatalf("stdout is not a layout: %v", err)
	}
	if l.Form != "IDD_ABOUT" {
		t.Errorf("form = %q, want IDD_ABOUT", l.Form)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := testEnv(t)
	input := writeForms(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{"invalid format", []string{"render", input, "-f", "pdf"}},
		{"stdout with two forms", []string{"render", input, "-f", "json", "-o", "-"}},
		{"stdout with two formats", []string{"render", input, "--form", "IDD_ABOUT", "-f", "json,dot", "-o", "-"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestInspectPlain(t *testing.T) {
	dir := testEnv(t)
	input := writeForms(t, dir)

	out, err := run(t, "inspect", input, "--plain")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"IDD_ABOUT", "IDD_LOGIN", "Login"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	dir := testEnv(t)
	input := writeForms(t, dir)

	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	cacheDir := strings.TrimSpace(out)
	if filepath.Base(cacheDir) != appName {
		t.Errorf("cache path = %q, want .../%s", cacheDir, appName)
	}

	if _, err := run(t, "layout", input); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if countFiles(cacheDir) == 0 {
		t.Fatal("layout run left the cache empty")
	}

	if _, err := run(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := countFiles(cacheDir); n != 0 {
		t.Errorf("%d files left after clear", n)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := testEnv(t)
	input := writeForms(t, dir)

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[log]\nlevel = \"loud\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "--config", bad, "layout", input); err == nil {
		t.Error("expected error for invalid log level")
	}

	good := filepath.Join(dir, "good.toml")
	if err := os.WriteFile(good, []byte("[cache]\nbackend = \"none\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "--config", good, "layout", input); err != nil {
		t.Errorf("layout with config: %v", err)
	}
	if _, err := run(t, "--config", filepath.Join(dir, "missing.toml"), "cache", "path"); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLogFileFlag(t *testing.T) {
	dir := testEnv(t)
	input := writeForms(t, dir)
	logPath := filepath.Join(dir, "rclayout.log")

	if _, err := run(t, "--log-file", logPath, "-v", "layout", input); err != nil {
		t.Fatalf("layout: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "loaded forms") {
		t.Errorf("log file missing pipeline records:\n%s", data)
	}
}

func TestCompletionCommand(t *testing.T) {
	testEnv(t)
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("completion script does not mention the command")
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestInspectModelNavigation(t *testing.T) {
	entries := []InspectEntry{
		{Form: "IDD_A", Class: "A", Tree: "a\n"},
		{Form: "IDD_B", Class: "B", Tree: "b\n"},
		{Form: "IDD_C", Class: "C", Tree: "c\n"},
	}
	m := NewInspectModel(entries)
	m.Height = 2

	key := func(s string) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	step := func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(InspectModel)
	}

	step(key("k"))
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first entry: %d", m.Cursor)
	}
	step(key("j"))
	step(key("j"))
	if m.Cursor != 2 || m.Offset != 1 {
		t.Errorf("after two downs cursor/offset = %d/%d, want 2/1", m.Cursor, m.Offset)
	}
	step(key("j"))
	if m.Cursor != 2 {
		t.Errorf("cursor moved past the last entry: %d", m.Cursor)
	}
	if !strings.Contains(m.View(), "IDD_C") {
		t.Error("view does not show the selected form")
	}
	step(key("g"))
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("home: cursor/offset = %d/%d", m.Cursor, m.Offset)
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not produce a quit message")
	}
}

func TestInspectModelEmpty(t *testing.T) {
	m := NewInspectModel(nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if v := next.View(); !strings.Contains(v, "no forms") {
		t.Errorf("empty view = %q", v)
	}
}
