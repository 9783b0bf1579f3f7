package framegraph

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// nodeKey identifies one texture-version node in the dot graph.
type nodeKey struct {
	handle TransientTextureHandle
}

// GenerateDotGraph renders the declared task/texture graph as Graphviz
// dot source, reflecting whatever resolution state the graph is
// currently in (call after Record to see culling and scheduling; before
// it, no task or texture renders as culled).
//
// Task nodes are ovals: gray when culled, red (with red label text) when
// the task never produced an output for a texture node that names it as
// producer. Texture-version nodes are rectangles: blue for external
// inputs, gray when culled, with a heavier outline (penwidth=2) for
// declared outputs. Reads draw a solid texture -> task edge; writes draw
// a dashed task -> texture edge, colored green and labeled "creates" for
// CreateWrite.
func (fg *Framegraph) GenerateDotGraph() string {
	var b strings.Builder
	b.WriteString("digraph framegraph {\n")
	b.WriteString("  rankdir=LR;\n")

	outputs := make(map[TransientTextureHandle]bool, len(fg.declaredOutputs))
	for _, o := range fg.declaredOutputs {
		outputs[o] = true
	}

	taskNames := make([]string, 0, len(fg.tasks))
	taskByName := make(map[string]*taskInfo, len(fg.tasks))
	for _, t := range fg.tasks {
		taskNames = append(taskNames, t.name)
		taskByName[t.name] = t
	}
	slices.Sort(taskNames)

	for _, name := range taskNames {
		t := taskByName[name]
		color := "black"
		fontcolor := "black"
		if t.state == taskCulled {
			color = "gray"
		} else if !hasProducedOutput(t) {
			color = "red"
			fontcolor = "red"
		}
		fmt.Fprintf(&b, "  %q [shape=oval, color=%s, fontcolor=%s];\n", taskNodeID(name), color, fontcolor)
	}

	nodes := make(map[nodeKey]bool)
	var nodeOrder []nodeKey
	for _, t := range fg.tasks {
		for _, d := range t.dependencies {
			k := nodeKey{handle: d.handle}
			if !nodes[k] {
				nodes[k] = true
				nodeOrder = append(nodeOrder, k)
			}
		}
	}
	slices.SortFunc(nodeOrder, func(a, b nodeKey) int {
		return strings.Compare(a.handle.String(), b.handle.String())
	})

	for _, k := range nodeOrder {
		h := k.handle
		info, err := fg.textures.Info(h.Texture)
		label := h.String()
		if err == nil {
			label = fmt.Sprintf("%s\\n%dx%d fmt%d v%d", info.Name, info.Width, info.Height, info.Format.Vk(), h.Version)
		}

		color := "black"
		penwidth := "1"
		state, stateErr := fg.textures.State(h.Texture)
		switch {
		case stateErr == nil && state.Status == StatusExternal:
			color = "blue"
		case isCulledTexture(fg.tasks, h.Texture):
			color = "gray"
		}
		if outputs[h] {
			penwidth = "2"
		}
		fmt.Fprintf(&b, "  %q [shape=box, color=%s, penwidth=%s, label=%q];\n", textureNodeID(h), color, penwidth, label)
	}

	for _, name := range taskNames {
		t := taskByName[name]
		for _, d := range t.dependencies {
			texID := textureNodeID(d.handle)
			taskID := taskNodeID(t.name)
			switch {
			case d.kind == DepRead:
				fmt.Fprintf(&b, "  %q -> %q [style=solid];\n", texID, taskID)
			case d.kind == DepCreateWrite:
				fmt.Fprintf(&b, "  %q -> %q [style=dashed, color=green, label=\"creates\"];\n", taskID, texID)
			default:
				fmt.Fprintf(&b, "  %q -> %q [style=dashed];\n", taskID, texID)
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func taskNodeID(name string) string { return "task_" + name }

func textureNodeID(h TransientTextureHandle) string {
	return fmt.Sprintf("tex_%s", h.String())
}

func hasProducedOutput(t *taskInfo) bool {
	for _, d := range t.dependencies {
		if d.kind.isProducer() {
			return true
		}
	}
	return false
}

func isCulledTexture(tasks []*taskInfo, h TextureHandle) bool {
	for _, t := range tasks {
		for _, d := range t.dependencies {
			if d.handle.Texture == h && d.kind.isProducer() {
				return t.state == taskCulled
			}
		}
	}
	return false
}
