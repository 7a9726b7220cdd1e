package ai

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/testutil"
)

func TestTraceDecisions(t *testing.T) {
	TraceDecisions(false)
	t.Cleanup(func() { TraceDecisions(false) })

	tests := []struct {
		name string
		on   bool
	}{
		{"on", true},
		{"off", false},
		{"back on", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			TraceDecisions(tt.on)
			if got := Tracing(); got != tt.on {
				t.Errorf("Tracing() = %v, want %v", got, tt.on)
			}
		})
	}
}

func TestTracing_ConcurrentBattles(t *testing.T) {
	TraceDecisions(true)
	t.Cleanup(func() { TraceDecisions(false) })

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			x, y := testutil.Battler("x"), testutil.Battler("y")
			l := testutil.Logic(t, [][]*battle.Battler{{x}, {y}}, testutil.WithAI(true))
			for range 20 {
				assert.NotEmpty(t, NewBasic(l, 0, 0, 1).Trigger())
			}
		}()
	}
	wg.Wait()
}
