package render

// Renderer draws one layer of a frame onto a canvas
type Renderer interface {
	Render(ctx Context, c Canvas)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}
