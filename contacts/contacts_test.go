package contacts

import "testing"

func TestListReadOutOfRangeReturnsNil(t *testing.T) {
	l := NewList(2)
	if got := l.Read(5); got != nil {
		t.Fatalf("Read(out of range) = %v, want nil", got)
	}
}

func TestListResetReplacesContacts(t *testing.T) {
	l := NewList(1)
	c := Contact{IModel: 0, I: 0, JModel: 0, J: 1, Weight: 0.5}
	l.Reset([][]Contact{{c}})
	got := l.Read(0)
	if len(got) != 1 || got[0].J != 1 {
		t.Fatalf("Read(0) = %v, want one contact with J=1", got)
	}
}

func TestNewManagerShape(t *testing.T) {
	m := NewManager(2, 3)
	if len(m.FluidFluid) != 2 || len(m.FluidBoundary) != 2 {
		t.Fatalf("fluid-indexed lists have wrong length: ff=%d fb=%d", len(m.FluidFluid), len(m.FluidBoundary))
	}
	if len(m.BoundaryBoundary) != 3 {
		t.Fatalf("boundary-indexed lists have wrong length: %d", len(m.BoundaryBoundary))
	}
	for _, l := range m.FluidFluid {
		if l.Len() != 0 {
			t.Fatalf("fresh FluidFluid list should start empty, got len %d", l.Len())
		}
	}
}
