package render

import (
	"math"
	"testing"

	"github.com/lixenwraith/shotplay/shot"
)

func TestNewLayout(t *testing.T) {
	tbl := shot.Table{W: 1, L: 2, RailWidth: 0.25, EdgeWidth: 0.5}
	l := NewLayout(tbl, 400, 0.1)

	// tableX = 2.5, tableY = 3.5, larger axis fills 400px
	if math.Abs(l.TableX-2.5) > 1e-9 || math.Abs(l.TableY-3.5) > 1e-9 {
		t.Fatalf("table size = %gx%g, want 2.5x3.5", l.TableX, l.TableY)
	}
	if want := 400 / 3.5; math.Abs(l.Scale-want) > 1e-9 {
		t.Errorf("Scale = %g, want %g", l.Scale, want)
	}
	if l.TableYPX < 399 || l.TableYPX > 400 {
		t.Errorf("TableYPX = %d, want ~400", l.TableYPX)
	}
	if l.TableXPX >= l.TableYPX {
		t.Errorf("TableXPX %d should be shorter than TableYPX %d", l.TableXPX, l.TableYPX)
	}
	if l.EdgePX != int(l.Scale*0.5) || l.RailPX != int(l.Scale*0.25) || l.DiamondPX != int(l.Scale*0.1) {
		t.Errorf("edge/rail/diamond px = %d/%d/%d", l.EdgePX, l.RailPX, l.DiamondPX)
	}
	if l.OffsetXPX != (l.TableXPX-l.SurfaceXPX)/2 || l.OffsetYPX != (l.TableYPX-l.SurfaceYPX)/2 {
		t.Errorf("offset = (%d,%d)", l.OffsetXPX, l.OffsetYPX)
	}
	if l.Offset() != Pt(float64(l.OffsetXPX), float64(l.OffsetYPX)) {
		t.Errorf("Offset() = %v", l.Offset())
	}
}

func TestNewLayoutWideTable(t *testing.T) {
	tbl := shot.Table{W: 4, L: 1}
	l := NewLayout(tbl, 200, 0)
	if want := 200 / 4.0; l.Scale != want {
		t.Errorf("Scale = %g, want %g", l.Scale, want)
	}
	if l.OffsetXPX != 0 || l.OffsetYPX != 0 {
		t.Errorf("railless table offset = (%d,%d), want 0", l.OffsetXPX, l.OffsetYPX)
	}
}
