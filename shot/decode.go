package shot

import (
	"encoding/json"
	"fmt"
	"io"
)

// file is the simulator export layout
// histories hold one [position, velocity, angular velocity] triple per frame
type file struct {
	Table     Table                       `json:"table"`
	Balls     []Ball                      `json:"balls"`
	Times     []float64                   `json:"times"`
	Histories map[string][][3][3]float64 `json:"histories"`
}

// Decode reads a shot exported by the simulator as JSON
func Decode(r io.Reader) (*Recorded, error) {
	var f file
	dec := json.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode shot: %w", err)
	}

	histories := make(map[string]History, len(f.Histories))
	for id, rows := range f.Histories {
		h := make(History, len(rows))
		for i, rvw := range rows {
			h[i] = State{R: rvw[0], V: rvw[1], W: rvw[2]}
		}
		histories[id] = h
	}

	for _, b := range f.Balls {
		if b.ID == "" {
			return nil, fmt.Errorf("decode shot: ball without id")
		}
	}

	return NewRecorded(f.Table, f.Balls, f.Times, histories), nil
}
