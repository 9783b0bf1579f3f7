package framegraph

import (
	"strings"
	"testing"

	"github.com/coryengine/cory/gfx"
)

func TestGenerateDotGraphMarksCulledAndOutputs(t *testing.T) {
	fg, _ := newTestFramegraph()

	usedDecl := DeclareTask(fg, "used", func(b *RenderTaskBuilder, yield func(TransientTextureHandle)) ExecuteFunc {
		h := b.Create("color", 64, 64, 1, gfx.FormatRGBA8Unorm, gfx.AccessColorAttachmentWrite)
		yield(h)
		return func(RenderInput) error { return nil }
	})
	DeclareTask(fg, "unused", func(b *RenderTaskBuilder, yield func(TransientTextureHandle)) ExecuteFunc {
		h := b.Create("scratch", 32, 32, 1, gfx.FormatRGBA8Unorm, gfx.AccessColorAttachmentWrite)
		yield(h)
		return func(RenderInput) error { return nil }
	})

	out, _ := usedDecl.Output()
	if err := fg.DeclareOutput(out); err != nil {
		t.Fatalf("DeclareOutput() error = %v", err)
	}

	cl := &fakeCommandList{}
	if _, err := fg.Record(cl, nil); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	dot := fg.GenerateDotGraph()
	if !strings.Contains(dot, "digraph framegraph {") {
		t.Error("missing digraph header")
	}
	if !strings.Contains(dot, "task_unused") || !strings.Contains(dot, "color=gray") {
		t.Error("culled task should render gray")
	}
	if !strings.Contains(dot, "penwidth=2") {
		t.Error("declared output texture should render with penwidth=2")
	}
}
