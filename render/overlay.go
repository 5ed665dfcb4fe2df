package render

// Overlay is the text drawn around the presented frame
type Overlay struct {
	Status string   // single status line
	Panel  []string // optional side panel, top-left
	Help   []string // optional centred help box
}
