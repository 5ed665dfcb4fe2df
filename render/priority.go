package render

// Priority determines render order. Lower values render first
type Priority int

const (
	PriorityTable Priority = iota
	PriorityBalls
	PriorityTrace
	PriorityDebug
)
