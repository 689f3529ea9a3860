package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/karel-quest/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return "Stub" }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func TestRegistry(t *testing.T) {
	Register("zz_stub", "Stub", func() (Game, error) { return stubGame{id: "zz_stub"}, nil })
	Register("aa_broken", "Broken", func() (Game, error) { return nil, errors.New("bad level") })

	list := List()
	if len(list) < 2 || list[0].ID != "aa_broken" || list[len(list)-1].ID != "zz_stub" {
		t.Errorf("List() not sorted: %+v", list)
	}

	if info, ok := Lookup("zz_stub"); !ok || info.Title != "Stub" {
		t.Errorf("Lookup() = %+v, %v", info, ok)
	}
	if Exists("missing") {
		t.Error("Exists(missing) should be false")
	}

	g, err := Create("zz_stub")
	if err != nil || g.ID() != "zz_stub" {
		t.Errorf("Create() = %v, %v", g, err)
	}
	if _, err := Create("aa_broken"); err == nil {
		t.Error("factory errors should be returned")
	}
	if _, err := Create("missing"); err == nil {
		t.Error("unknown IDs should fail")
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_stub", "Again", nil)
}
