package render

// SystemRenderer is implemented by layers with visual output
// Layers read only the context and write only the buffer
type SystemRenderer interface {
	Render(ctx RenderContext, buf *RenderBuffer)
}
