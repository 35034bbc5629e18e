package inventory

import "testing"

func TestNetworkTypesCatalog(t *testing.T) {
	types := NetworkTypes()
	if len(types) != 10 {
		t.Fatalf("expected 10 network types, got %d", len(types))
	}
	if types[0].Code != "all" || types[0].Permanent != nil || types[0].Restricted != nil {
		t.Fatalf("'all' must carry no constraints: %+v", types[0])
	}

	byCode := map[string]NetworkType{}
	for _, nt := range types {
		if _, dup := byCode[nt.Code]; dup {
			t.Fatalf("duplicate code %q", nt.Code)
		}
		byCode[nt.Code] = nt
	}

	permo := byCode["permo"]
	if permo.Permanent == nil || !*permo.Permanent || permo.Restricted == nil || *permo.Restricted {
		t.Fatalf("'permo' must be permanent and public: %+v", permo)
	}
	tempr := byCode["tempr"]
	if tempr.Permanent == nil || *tempr.Permanent || tempr.Restricted == nil || !*tempr.Restricted {
		t.Fatalf("'tempr' must be temporary and restricted: %+v", tempr)
	}
}

func TestSensorTypesCatalog(t *testing.T) {
	types := SensorTypes()
	if len(types) != 8 {
		t.Fatalf("expected 8 sensor types, got %d", len(types))
	}
	if types[0].Code != "all" {
		t.Fatalf("expected 'all' first, got %q", types[0].Code)
	}
	seen := map[string]bool{}
	for _, st := range types {
		if st.Description == "" {
			t.Fatalf("sensor type %q has no description", st.Code)
		}
		if seen[st.Code] {
			t.Fatalf("duplicate code %q", st.Code)
		}
		seen[st.Code] = true
	}
}

func TestPhasesCatalog(t *testing.T) {
	phases := Phases()
	if len(phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(phases))
	}
	if phases[0].Code != "P" || phases[1].Code != "S" {
		t.Fatalf("unexpected phase codes: %+v", phases)
	}
}
