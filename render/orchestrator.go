package render

type rendererEntry struct {
	renderer Renderer
	priority Priority
	index    int // registration order for stable sort
}

// Orchestrator coordinates the per-frame draw sequence
type Orchestrator struct {
	renderers []rendererEntry
	regCount  int
}

// NewOrchestrator creates an empty orchestrator
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		renderers: make([]rendererEntry, 0, 4),
	}
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(r Renderer, priority Priority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// RenderFrame runs every visible renderer in priority order; each one
// completes before the next starts
func (o *Orchestrator) RenderFrame(ctx Context, c Canvas) {
	for _, entry := range o.renderers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.renderer.Render(ctx, c)
	}
}
