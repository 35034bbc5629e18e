package window

import (
	"errors"
	"testing"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

func TestAccumulatorCapBoundary(t *testing.T) {
	acc := NewAccumulator(3)
	for i := 0; i < 3; i++ {
		if err := acc.TryAppend(contracts.TimeWindow{}); err != nil {
			t.Fatalf("append %d within the limit failed: %v", i+1, err)
		}
	}
	if acc.Len() != 3 {
		t.Fatalf("expected 3 windows, got %d", acc.Len())
	}

	err := acc.TryAppend(contracts.TimeWindow{})
	if !errors.Is(err, contracts.ErrTooManyLines) {
		t.Fatalf("expected ErrTooManyLines on the limit+1 append, got %v", err)
	}
}

func TestAccumulatorZeroLimit(t *testing.T) {
	acc := NewAccumulator(0)
	err := acc.TryAppend(contracts.TimeWindow{})
	if !errors.Is(err, contracts.ErrTooManyLines) {
		t.Fatalf("a zero limit must reject the first append, got %v", err)
	}
}

func TestAccumulatorPreservesOrder(t *testing.T) {
	acc := NewAccumulator(10)
	keys := []contracts.ChannelKey{
		{Network: "GE", Station: "APE", Channel: "BHZ"},
		{Network: "NL", Station: "HGN", Channel: "BHN", Location: "02"},
		{Network: "GE", Station: "APE", Channel: "BHN"},
	}
	for _, k := range keys {
		if err := acc.TryAppend(contracts.TimeWindow{Key: k}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	for i, w := range acc.Windows() {
		if w.Key != keys[i] {
			t.Fatalf("window %d: expected %v, got %v", i, keys[i], w.Key)
		}
	}
}
