package contracts

import (
	"errors"
	"strings"
	"testing"
)

func TestParseChannelKeys(t *testing.T) {
	keys, err := ParseChannelKeys([]byte(`[["GE","APE","BHZ",""],["NL","HGN","BHN","02"]]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	want := ChannelKey{Network: "GE", Station: "APE", Channel: "BHZ", Location: ""}
	if keys[0] != want {
		t.Fatalf("expected %v, got %v", want, keys[0])
	}
	if keys[1].Location != "02" {
		t.Fatalf("expected location 02, got %q", keys[1].Location)
	}
}

func TestParseChannelKeysCoercesScalars(t *testing.T) {
	keys, err := ParseChannelKeys([]byte(`[["7G", 1984, "HHZ", 10]]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if keys[0].Station != "1984" {
		t.Fatalf("expected station 1984, got %q", keys[0].Station)
	}
	if keys[0].Location != "10" {
		t.Fatalf("expected location 10, got %q", keys[0].Location)
	}
}

func TestParseChannelKeysRejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"not an array", `{"streams": []}`},
		{"tuple not array", `["GE.APE.BHZ."]`},
		{"three components", `[["GE","APE","BHZ"]]`},
		{"five components", `[["GE","APE","BHZ","","x"]]`},
		{"composite component", `[["GE",["APE"],"BHZ",""]]`},
		{"null component", `[["GE",null,"BHZ",""]]`},
		{"trailing garbage", `[["GE","APE","BHZ",""]] extra`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseChannelKeys([]byte(tc.in))
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestParseChannelKeysErrorNamesOffender(t *testing.T) {
	_, err := ParseChannelKeys([]byte(`[["GE","APE","BHZ",""],["NL","HGN"]]`))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `["NL","HGN"]`) {
		t.Fatalf("error should carry the offending tuple, got %q", err.Error())
	}
}

func TestChannelKeyString(t *testing.T) {
	k := ChannelKey{Network: "GE", Station: "APE", Channel: "BHZ", Location: ""}
	if k.String() != "GE.APE.BHZ." {
		t.Fatalf("got %q", k.String())
	}
}
