package place

import (
	"math/rand"
	"testing"

	"github.com/gopcb/pcbcore/board"
	"github.com/gopcb/pcbcore/geom"
)

func TestPerturbUndoRestoresExactState(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	components := []*board.Component{
		comp("R1", 1000, 1000, 200, 100, true),
		comp("R2", 2000, 1000, 200, 100, true),
		comp("R3", 3000, 2000, 200, 100, true),
	}
	boardBox := geom.NewBox(0, 0, 10000, 10000)
	cp := DefaultCostParams()

	for i := 0; i < 200; i++ {
		before := snapshotAll(components)
		pt := perturb(rng, components, boardBox, 300*milScale, cp)
		pt.undo(components)
		after := snapshotAll(components)
		for j := range before {
			if before[j] != after[j] {
				t.Fatalf("iteration %d: undo did not restore component %d: before=%v after=%v", i, j, before[j], after[j])
			}
		}
	}
}

type compState struct {
	pos  geom.Point
	rot  board.Rotation
	side board.Side
}

func snapshotAll(components []*board.Component) []compState {
	out := make([]compState, len(components))
	for i, c := range components {
		out[i] = compState{c.Pos, c.Rotation, c.Side}
	}
	return out
}

func TestShiftKeepsComponentOnBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := comp("R1", 5000, 5000, 200, 100, true)
	boardBox := geom.NewBox(0, 0, 10000, 10000)
	cp := DefaultCostParams()

	for i := 0; i < 100; i++ {
		applyShift(rng, c, boardBox, 300*milScale, cp)
		vb := c.VBox()
		if vb.X1 < boardBox.X1 || vb.Y1 < boardBox.Y1 || vb.X2 > boardBox.X2 || vb.Y2 > boardBox.Y2 {
			t.Fatalf("iteration %d: shifted component left the board: %+v", i, vb)
		}
	}
}

func TestSwapForbiddenBetweenSMDAndThroughHoleOnOppositeSides(t *testing.T) {
	smdTop := comp("U1", 0, 0, 100, 100, true)
	throughHoleBottom := comp("J1", 500, 0, 100, 100, false)
	throughHoleBottom.Side = board.Bottom

	if !swapForbidden(smdTop, throughHoleBottom) {
		t.Fatal("expected swap between an SMD-top and through-hole-bottom component to be forbidden")
	}

	smdBottom := comp("U2", 0, 0, 100, 100, true)
	smdBottom.Side = board.Bottom
	if swapForbidden(smdTop, smdBottom) {
		t.Fatal("expected swap between two all-SMD components on different sides to be allowed")
	}
}

func TestRotateFlipOnlyAppliesToAllSMD(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	notSMD := comp("J1", 0, 0, 100, 100, false)
	startSide := notSMD.Side
	for i := 0; i < 50; i++ {
		applyRotate(rng, notSMD)
		if notSMD.Side != startSide {
			t.Fatal("expected a through-hole component to never flip sides")
		}
	}
}
