package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umldraw/pkg/errors"
	"github.com/matzehuels/umldraw/pkg/observability"
	"github.com/matzehuels/umldraw/pkg/render/drawio"
)

const employeeSource = `class Person:
    def __init__(self, name):
        self.name = name


class Manager(Person):
    pass


class Employee(Person):
    def __init__(self, name):
        self.manager = Manager()
        self.boss = Director()

    def pay(self, amount) -> bool:
        """Pay the employee."""
        return True
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestRunner() (*Runner, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRunner(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})), &buf
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"drawio", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"DRAWIO", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateLayout(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*drawio.Options)
		wantErr bool
	}{
		{"defaults", func(*drawio.Options) {}, false},
		{"zero cell height", func(o *drawio.Options) { o.CellHeight = 0 }, true},
		{"negative separator", func(o *drawio.Options) { o.SeparatorHeight = -1 }, true},
		{"zero letter size", func(o *drawio.Options) { o.LetterSize = 0 }, true},
		{"negative min width", func(o *drawio.Options) { o.MinWidth = -5 }, true},
		{"negative gap", func(o *drawio.Options) { o.Gap = -1 }, true},
		{"zero gap", func(o *drawio.Options) { o.Gap = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := drawio.DefaultOptions()
			tt.modify(&o)
			err := ValidateLayout(o)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLayout() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultOutputFor(t *testing.T) {
	tests := map[string]string{
		"":       "output.drawio",
		"drawio": "output.drawio",
		"json":   "output.json",
		"svg":    "output.svg",
	}
	for format, want := range tests {
		if got := DefaultOutputFor(format); got != want {
			t.Errorf("DefaultOutputFor(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{Source: "models.py"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Format != FormatDrawio || opts.Output != DefaultOutput {
		t.Errorf("defaults = %s/%s", opts.Format, opts.Output)
	}
	if opts.Layout != drawio.DefaultOptions() {
		t.Errorf("layout defaults = %+v", opts.Layout)
	}
	if opts.Document != drawio.DefaultDocumentOptions() {
		t.Errorf("document defaults = %+v", opts.Document)
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults: %v", err)
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing source", Options{}, errors.ErrCodeInvalidPath},
		{"bad format", Options{Source: "a.py", Format: "png"}, errors.ErrCodeInvalidFormat},
		{"bad output", Options{Source: "a.py", Output: "out/"}, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsLayoutDefaults(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		opts := Options{Source: "a.py"}
		opts.SetRenderDefaults()
		if opts.Layout != drawio.DefaultOptions() {
			t.Errorf("layout = %+v, want defaults", opts.Layout)
		}
	})

	t.Run("set fields kept", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Source = "a.py"
		opts.Layout.MinWidth = 240
		opts.Layout.Gap = 0
		opts.SetRenderDefaults()

		if opts.Layout.MinWidth != 240 || opts.Layout.Gap != 0 {
			t.Errorf("layout = %+v, want min_width 240 and gap 0", opts.Layout)
		}
		if opts.Layout.CellHeight != drawio.DefaultCellHeight {
			t.Errorf("CellHeight = %v, want default", opts.Layout.CellHeight)
		}
	})
}

func TestIsModelInput(t *testing.T) {
	for path, want := range map[string]bool{
		"models.py":   false,
		"model.json":  true,
		"MODEL.JSON":  true,
		"json.py":     false,
		"dir/x.jsonl": false,
	} {
		o := Options{Source: path}
		if got := o.IsModelInput(); got != want {
			t.Errorf("IsModelInput(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "layout.toml", `
format = "json"
stable_ids = true

[layout]
min_width = 200
gap = 60

[document]
page_name = "Classes"
`)
	opts := DefaultOptions()
	if err := LoadConfig(path, &opts); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if opts.Format != FormatJSON || !opts.StableIDs {
		t.Errorf("top-level keys not applied: %+v", opts)
	}
	if opts.Layout.MinWidth != 200 || opts.Layout.Gap != 60 {
		t.Errorf("layout = %+v", opts.Layout)
	}
	if opts.Layout.CellHeight != drawio.DefaultCellHeight {
		t.Errorf("unset layout key changed: %v", opts.Layout.CellHeight)
	}
	if opts.Document.PageName != "Classes" || opts.Document.Host != "Electron" {
		t.Errorf("document = %+v", opts.Document)
	}
}

func TestLoadConfigZeroValues(t *testing.T) {
	path := writeFile(t, "layout.toml", `
[layout]
gap = 0
origin_x = 0
origin_y = 0
min_width = 0
`)
	opts := DefaultOptions()
	if err := LoadConfig(path, &opts); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	opts.Source = "models.py"
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	l := opts.Layout
	if l.Gap != 0 || l.OriginX != 0 || l.OriginY != 0 || l.MinWidth != 0 {
		t.Errorf("configured zeros replaced: gap=%v origin=(%v, %v) min_width=%v", l.Gap, l.OriginX, l.OriginY, l.MinWidth)
	}
	if l.CellHeight != drawio.DefaultCellHeight {
		t.Errorf("CellHeight = %v, want default", l.CellHeight)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[layout\nmin_width = 1", errors.ErrCodeInvalidConfig},
		{"unknown key", "[layout]\nmin_widht = 1", errors.ErrCodeInvalidConfig},
		{"wrong type", "[layout]\nmin_width = \"wide\"", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			err := LoadConfig(writeFile(t, "c.toml", tt.content), &opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("LoadConfig() = %v, want code %s", err, tt.code)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		opts := DefaultOptions()
		err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"), &opts)
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("LoadConfig() = %v, want FILE_NOT_FOUND", err)
		}
	})
}

func TestRunnerExecute(t *testing.T) {
	r, logs := newTestRunner()
	opts := Options{Source: writeFile(t, "models.py", employeeSource), StableIDs: true}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.ClassCount != 3 {
		t.Errorf("ClassCount = %d, want 3", result.Stats.ClassCount)
	}
	if result.Stats.EdgeCount != 1 || result.Stats.DroppedCount != 1 {
		t.Errorf("edges = %d, dropped = %d, want 1 and 1", result.Stats.EdgeCount, result.Stats.DroppedCount)
	}

	out := string(result.Artifact)
	if !strings.HasPrefix(out, drawio.Header) {
		t.Error("artifact missing XML header")
	}
	for _, want := range []string{`value="Employee"`, `value="manager : Call, Manager"`, `value="pay(amount): bool"`} {
		if !strings.Contains(out, want) {
			t.Errorf("artifact missing %s", want)
		}
	}

	if !strings.Contains(logs.String(), "could not be added") {
		t.Errorf("expected warning for unresolved Director, logs:\n%s", logs)
	}
}

func TestRunnerExecuteStableIDsRepeatable(t *testing.T) {
	r, _ := newTestRunner()
	opts := Options{Source: writeFile(t, "models.py", employeeSource), StableIDs: true}

	a, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Artifact, b.Artifact) {
		t.Error("stable ids should give byte-identical output")
	}
}

func TestRunnerExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		code errors.Code
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.py") }, errors.ErrCodeFileNotFound},
		{"syntax error", func(t *testing.T) string { return writeFile(t, "bad.py", "class A(:\n    pass\n") }, errors.ErrCodeInvalidSource},
		{"directory", func(t *testing.T) string { return t.TempDir() }, errors.ErrCodeInvalidPath},
		{"bad model", func(t *testing.T) string { return writeFile(t, "m.json", "{") }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRunner()
			_, err := r.Execute(context.Background(), Options{Source: tt.path(t)})
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRunnerExecuteCanceled(t *testing.T) {
	r, _ := newTestRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Execute(ctx, Options{Source: writeFile(t, "models.py", employeeSource)})
	if err != context.Canceled {
		t.Errorf("Execute() = %v, want context.Canceled", err)
	}
}

func TestRunnerModelRoundTrip(t *testing.T) {
	r, _ := newTestRunner()
	src := writeFile(t, "models.py", employeeSource)

	exported, err := r.Execute(context.Background(), Options{Source: src, StableIDs: true, Format: FormatJSON})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	direct, err := r.Execute(context.Background(), Options{Source: src, StableIDs: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	modelPath := writeFile(t, "model.json", string(exported.Artifact))
	reimported, err := r.Execute(context.Background(), Options{Source: modelPath})
	if err != nil {
		t.Fatalf("render from model: %v", err)
	}
	if !bytes.Equal(direct.Artifact, reimported.Artifact) {
		t.Error("re-rendering an exported model should match the direct render")
	}
}

func TestRunnerRenderDOT(t *testing.T) {
	r, _ := newTestRunner()
	result, err := r.Execute(context.Background(), Options{
		Source: writeFile(t, "models.py", employeeSource),
		Format: FormatDOT,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	dot := string(result.Artifact)
	if !strings.Contains(dot, "digraph G") || !strings.Contains(dot, "arrowhead=empty") {
		t.Errorf("unexpected DOT output:\n%s", dot)
	}
}

func TestRunnerRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	r, _ := newTestRunner()
	result, err := r.Execute(context.Background(), Options{
		Source: writeFile(t, "models.py", employeeSource),
		Format: FormatSVG,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.Contains(result.Artifact, []byte("<svg")) {
		t.Error("SVG output missing <svg> element")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopDiagramHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnExtractComplete(_ context.Context, _ string, n int, _ time.Duration, err error) {
	h.record("extract")
}

func (h *recordingHooks) OnLayoutComplete(context.Context, time.Duration, error) {
	h.record("layout")
}

func (h *recordingHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
	h.record("render")
}

func (h *recordingHooks) OnRelationDropped(_ context.Context, _, _, target string) {
	h.record("dropped:" + target)
}

func (h *recordingHooks) OnDuplicateClass(_ context.Context, name string) {
	h.record("duplicate:" + name)
}

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetDiagramHooks(hooks)
	defer observability.Reset()

	src := employeeSource + "\n\nclass Person:\n    pass\n"
	r, _ := newTestRunner()
	if _, err := r.Execute(context.Background(), Options{Source: writeFile(t, "m.py", src)}); err != nil {
		t.Fatal(err)
	}

	want := []string{"duplicate:Person", "extract", "layout", "dropped:Director", "render"}
	if strings.Join(hooks.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}
