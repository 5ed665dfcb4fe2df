package render

// Context provides frame state for renderers, passed by value
type Context struct {
	Frame  int    // current display frame, 0 <= Frame < Frames
	Frames int    // total frames in the shot
	Layout Layout // table to pixel mapping
}
