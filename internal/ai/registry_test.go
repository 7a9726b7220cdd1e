package ai

import (
	"testing"

	"github.com/udisondev/battlecore/internal/battle"
)

func TestRegistry_RegisterUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register(1, NewBasic)

	if r.Count() != 1 {
		t.Errorf("Count() after Register() = %d, want 1", r.Count())
	}

	r.Register(1, NewBasic)
	if r.Count() != 1 {
		t.Errorf("Count() after re-Register() = %d, want 1", r.Count())
	}

	if _, err := r.Factory(1); err != nil {
		t.Fatalf("Factory(1) error = %v", err)
	}

	r.Unregister(1)
	if r.Count() != 0 {
		t.Errorf("Count() after Unregister() = %d, want 0", r.Count())
	}
	if _, err := r.Factory(1); err == nil {
		t.Error("Factory(1) after Unregister() should return error")
	}
	r.Unregister(1)
	if r.Count() != 0 {
		t.Errorf("Count() after double Unregister() = %d, want 0", r.Count())
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	if r.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", r.Count())
	}
	for level := 1; level <= 3; level++ {
		f, err := r.Factory(level)
		if err != nil {
			t.Fatalf("Factory(%d) error = %v", level, err)
		}
		a := f(nil, 1, 0, level)
		if a.Level() != level || a.Bank() != 1 || a.Party() != 0 {
			t.Errorf("Factory(%d) built level=%d bank=%d party=%d", level, a.Level(), a.Bank(), a.Party())
		}
	}
}

func level(n int) *int { return &n }

func TestRegistry_Build(t *testing.T) {
	newLogic := func(t *testing.T, levels [][]*int) *battle.Logic {
		t.Helper()
		l, err := battle.NewLogic(battle.Config{
			Info: battle.Info{BattleID: 7, VsType: 1, AILevels: levels},
			Parties: [][]*battle.Battler{
				{{Name: "x", HP: 10, MaxHP: 10}},
				{{Name: "y", HP: 10, MaxHP: 10}},
			},
		})
		if err != nil {
			t.Fatalf("NewLogic() error = %v", err)
		}
		return l
	}

	t.Run("skips player parties", func(t *testing.T) {
		ais, err := DefaultRegistry().Build(newLogic(t, [][]*int{{nil}, {level(2)}}))
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if len(ais) != 1 {
			t.Fatalf("Build() built %d AIs, want 1", len(ais))
		}
		if ais[0].Bank() != 1 || ais[0].Level() != 2 {
			t.Errorf("Build()[0] bank=%d level=%d, want bank=1 level=2", ais[0].Bank(), ais[0].Level())
		}
	})

	t.Run("unknown level", func(t *testing.T) {
		if _, err := DefaultRegistry().Build(newLogic(t, [][]*int{{level(1)}, {level(9)}})); err == nil {
			t.Error("Build() with level 9 should return error")
		}
	})
}
