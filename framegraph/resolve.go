package framegraph

// resolve implements the resolution algorithm from §4.5: build the
// producer/consumer map, cull everything not reachable from a declared
// output, then topologically order the survivors by reads-after-writes
// with declaration order breaking ties.
func (fg *Framegraph) resolve() ([]*taskInfo, error) {
	producer := make(map[TransientTextureHandle]*taskInfo)
	for _, t := range fg.tasks {
		for _, d := range t.dependencies {
			if d.kind.isProducer() {
				producer[d.handle] = t
			}
		}
	}

	scheduled := make(map[*taskInfo]bool)
	var workList []*taskInfo

	markProducer := func(h TransientTextureHandle, readerTask string) error {
		if t, ok := producer[h]; ok {
			if !scheduled[t] {
				scheduled[t] = true
				workList = append(workList, t)
			}
			return nil
		}
		if fg.isExternalVersionZero(h) {
			return nil
		}
		texInfo, _ := fg.textures.Info(h.Texture)
		return &UnboundReadError{Task: readerTask, Texture: texInfo.Name, Version: h.Version}
	}

	for _, h := range fg.declaredOutputs {
		if err := markProducer(h, "<declareOutput>"); err != nil {
			return nil, err
		}
	}

	for len(workList) > 0 {
		t := workList[0]
		workList = workList[1:]
		for _, d := range t.dependencies {
			if !d.kind.isConsumer() {
				continue
			}
			if err := markProducer(d.handle, t.name); err != nil {
				return nil, err
			}
		}
	}

	for _, t := range fg.tasks {
		if scheduled[t] {
			t.state = taskDeclared
		} else {
			t.state = taskCulled
		}
	}

	return topoSort(fg.tasks, scheduled, producer)
}

// isExternalVersionZero reports whether h addresses version 0 of a
// texture registered as an external input — the implicit "producer" for
// textures the caller already synchronized before handing them in.
func (fg *Framegraph) isExternalVersionZero(h TransientTextureHandle) bool {
	if h.Version != 0 {
		return false
	}
	state, err := fg.textures.State(h.Texture)
	if err != nil {
		return false
	}
	return state.Status == StatusExternal
}

// topoSort orders the scheduled tasks by reads-after-writes: an edge
// producer -> consumer exists for every Read dependency. Ties among
// tasks with no remaining unsatisfied dependency are broken by
// declaration order, since fg.tasks is already in that order.
func topoSort(all []*taskInfo, scheduled map[*taskInfo]bool, producer map[TransientTextureHandle]*taskInfo) ([]*taskInfo, error) {
	var nodes []*taskInfo
	for _, t := range all {
		if scheduled[t] {
			nodes = append(nodes, t)
		}
	}

	indegree := make(map[*taskInfo]int, len(nodes))
	consumers := make(map[*taskInfo][]*taskInfo, len(nodes))
	for _, t := range nodes {
		for _, d := range t.dependencies {
			if !d.kind.isConsumer() {
				continue
			}
			p, ok := producer[d.handle]
			if !ok || p == t {
				continue
			}
			indegree[t]++
			consumers[p] = append(consumers[p], t)
		}
	}

	result := make([]*taskInfo, 0, len(nodes))
	remaining := make(map[*taskInfo]bool, len(nodes))
	for _, t := range nodes {
		remaining[t] = true
	}

	for len(remaining) > 0 {
		var next *taskInfo
		for _, t := range nodes {
			if remaining[t] && indegree[t] == 0 {
				next = t
				break
			}
		}
		if next == nil {
			path := make([]string, 0, len(remaining))
			for _, t := range nodes {
				if remaining[t] {
					path = append(path, t.name)
				}
			}
			return nil, &CycleError{Path: path}
		}

		next.executionPriority = len(result)
		result = append(result, next)
		delete(remaining, next)
		for _, c := range consumers[next] {
			indegree[c]--
		}
	}

	return result, nil
}
