package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/umldraw/pkg/errors"
	"github.com/matzehuels/umldraw/pkg/pipeline"
)

const sampleSource = `class Department:
    pass


class Employee:
    def __init__(self):
        self.department = Department()

    def transfer(self, target: str) -> bool:
        """Move to another department."""
        return True
`

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out bytes.Buffer
	return &CLI{Logger: newLogger(io.Discard, LogInfo), Out: &out}, &out
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootNoArgsPrintsUsage(t *testing.T) {
	c, out := newTestCLI(t)
	if err := execute(t, c); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Errorf("expected usage, got:\n%s", out)
	}
}

func TestRenderNoArgsPrintsUsage(t *testing.T) {
	c, out := newTestCLI(t)
	dir := t.TempDir()
	t.Chdir(dir)

	if err := execute(t, c, "render"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Errorf("expected usage, got:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, pipeline.DefaultOutput)); err == nil {
		t.Error("render without input should not write a file")
	}
}

func TestRenderWritesDefaultOutput(t *testing.T) {
	c, out := newTestCLI(t)
	dir := t.TempDir()
	t.Chdir(dir)
	src := writeSource(t, dir, "models.py", sampleSource)

	if err := execute(t, c, "render", src); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, pipeline.DefaultOutput))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Contains(data, []byte(`value="department : Call, Department"`)) {
		t.Error("output missing department attribute")
	}
	if !strings.Contains(out.String(), "Generated diagram") || !strings.Contains(out.String(), "2 classes") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestRootRendersPositionalFile(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	t.Chdir(dir)
	src := writeSource(t, dir, "target.py", sampleSource)

	if err := execute(t, c, src); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, pipeline.DefaultOutput)); err != nil {
		t.Fatalf("default output not written: %v", err)
	}

	if err := execute(t, c, "-f", "json", "-o", "model.json", src); err != nil {
		t.Fatalf("execute with flags: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "model.json"))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if !bytes.Contains(data, []byte(`"Employee"`)) {
		t.Errorf("json output missing Employee:\n%s", data)
	}
}

func TestRenderToStdout(t *testing.T) {
	c, out := newTestCLI(t)
	src := writeSource(t, t.TempDir(), "models.py", sampleSource)

	if err := execute(t, c, "render", src, "-o", "-", "--format", "dot"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out.String(), "digraph G") {
		t.Errorf("stdout should hold only the DOT output, got:\n%s", out)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args func(dir string) []string
		code errors.Code
	}{
		{
			name: "missing input",
			args: func(dir string) []string { return []string{"render", filepath.Join(dir, "none.py")} },
			code: errors.ErrCodeFileNotFound,
		},
		{
			name: "syntax error",
			args: func(dir string) []string {
				return []string{"render", writeSource(t, dir, "bad.py", "class A(:\n")}
			},
			code: errors.ErrCodeInvalidSource,
		},
		{
			name: "bad format",
			args: func(dir string) []string {
				return []string{"render", writeSource(t, dir, "a.py", sampleSource), "-f", "png"}
			},
			code: errors.ErrCodeInvalidFormat,
		},
		{
			name: "missing config",
			args: func(dir string) []string {
				return []string{"render", writeSource(t, dir, "a.py", sampleSource), "--config", filepath.Join(dir, "none.toml")}
			},
			code: errors.ErrCodeFileNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			dir := t.TempDir()
			t.Chdir(dir)
			err := execute(t, c, tt.args(dir)...)
			if !errors.Is(err, tt.code) {
				t.Errorf("render error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestBuildRenderOptionsPrecedence(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	cfg := writeSource(t, dir, "layout.toml", "format = \"json\"\ndocs = true\n\n[layout]\ngap = 80\n")

	cmd := c.renderCommand()
	if err := cmd.ParseFlags([]string{"--config", cfg, "--format", "dot"}); err != nil {
		t.Fatal(err)
	}
	config, _ := cmd.Flags().GetString("config")
	format, _ := cmd.Flags().GetString("format")

	opts, err := c.buildRenderOptions(cmd, "models.py", renderOpts{config: config, format: format})
	if err != nil {
		t.Fatalf("buildRenderOptions: %v", err)
	}
	if opts.Format != pipeline.FormatDOT {
		t.Errorf("flag should override config format, got %q", opts.Format)
	}
	if !opts.Docs {
		t.Error("config docs=true should apply when --doc is not given")
	}
	if opts.Layout.Gap != 80 {
		t.Errorf("Gap = %v, want 80", opts.Layout.Gap)
	}
	if opts.Output != "output.dot" {
		t.Errorf("Output = %q, want output.dot", opts.Output)
	}
}

func TestBuildRenderOptionsUserConfig(t *testing.T) {
	c, _ := newTestCLI(t)
	home := os.Getenv("XDG_CONFIG_HOME")
	if err := os.MkdirAll(filepath.Join(home, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	writeSource(t, filepath.Join(home, appName), configFileName, "stable_ids = true\n")

	cmd := c.renderCommand()
	opts, err := c.buildRenderOptions(cmd, "models.py", renderOpts{})
	if err != nil {
		t.Fatalf("buildRenderOptions: %v", err)
	}
	if !opts.StableIDs {
		t.Error("user config file should be loaded when --config is absent")
	}
	if opts.Output != pipeline.DefaultOutput {
		t.Errorf("Output = %q, want %q", opts.Output, pipeline.DefaultOutput)
	}
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteAndClose(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		out := &failingCloser{}
		if err := writeAndClose(out, "d.drawio", []byte("<mxfile/>")); err != nil {
			t.Fatalf("writeAndClose: %v", err)
		}
		if !out.closed || out.String() != "<mxfile/>" {
			t.Errorf("closed=%v data=%q", out.closed, out.String())
		}
	})

	t.Run("close error", func(t *testing.T) {
		diskFull := stderrors.New("no space left on device")
		out := &failingCloser{closeErr: diskFull}
		err := writeAndClose(out, "d.drawio", []byte("<mxfile/>"))
		if !stderrors.Is(err, diskFull) {
			t.Errorf("writeAndClose() = %v, want the close error", err)
		}
	})
}
