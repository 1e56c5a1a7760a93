package migration

import (
	"testing"

	"github.com/loykin/sqlrun/internal/config"
)

func history(types []Type, versions ...int64) []Migration {
	out := make([]Migration, len(versions))
	for i, v := range versions {
		typ := TypeSimple
		if types != nil {
			typ = types[i]
		}
		out[i] = Migration{Version: v, Type: typ}
	}
	return out
}

func TestInferScheme(t *testing.T) {
	cases := []struct {
		name     string
		versions []int64
		want     Scheme
	}{
		{"empty history", nil, SchemeSequential},
		{"single version 1", []int64{1}, SchemeSequential},
		{"single non-1 version", []int64{5}, SchemeTimestamp},
		{"consecutive pair", []int64{1, 2}, SchemeSequential},
		{"gapped pair", []int64{1, 5}, SchemeTimestamp},
		{"only the last two matter", []int64{1, 7, 8}, SchemeSequential},
		{"timestamps", []int64{20240829100000, 20240830120000}, SchemeTimestamp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InferScheme(history(nil, tc.versions...)); got != tc.want {
				t.Fatalf("InferScheme(%v) = %q, want %q", tc.versions, got, tc.want)
			}
		})
	}
}

func TestInferType(t *testing.T) {
	if got := InferType(nil); got != TypeSimple {
		t.Fatalf("empty history should infer simple, got %q", got)
	}
	h := history([]Type{TypeSimple, TypeReversible}, 1, 2)
	if got := InferType(h); got != TypeReversible {
		t.Fatalf("latest migration type should win, got %q", got)
	}
}

func TestResolveType(t *testing.T) {
	h := history([]Type{TypeReversible}, 1)
	if got := ResolveType(config.TypeSimple, h); got != TypeSimple {
		t.Fatalf("explicit default must bypass inference, got %q", got)
	}
	if got := ResolveType(config.TypeInferred, h); got != TypeReversible {
		t.Fatalf("inferred tag must consult history, got %q", got)
	}
}

func TestResolveScheme(t *testing.T) {
	h := history(nil, 1, 5)
	if got := ResolveScheme(config.VersioningSequential, h); got != SchemeSequential {
		t.Fatalf("explicit default must bypass inference, got %q", got)
	}
	if got := ResolveScheme(config.VersioningInferred, h); got != SchemeTimestamp {
		t.Fatalf("inferred tag must consult history, got %q", got)
	}
}
