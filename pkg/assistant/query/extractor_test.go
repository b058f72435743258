package query

import (
	"context"
	"errors"
	"testing"
)

type staticDict struct {
	aliases map[string]string
	err     error
}

func (d *staticDict) Aliases(ctx context.Context) (map[string]string, error) {
	return d.aliases, d.err
}

func TestExtract(t *testing.T) {
	dict := &staticDict{aliases: map[string]string{
		"caixa": "CX",
		"lata":  "LT",
		"pack":  "PK",
	}}
	e := NewExtractor(dict)

	tests := []struct {
		name         string
		query        string
		wantResidual string
		wantUnits    []string
		wantVolume   string
	}{
		{
			name:         "no filters",
			query:        "nescau achocolatado",
			wantResidual: "nescau achocolatado",
		},
		{
			name:         "singular alias",
			query:        "leite caixa",
			wantResidual: "leite",
			wantUnits:    []string{"CX"},
		},
		{
			name:         "plural alias",
			query:        "quero 2 caixas de leite",
			wantResidual: "quero 2 de leite",
			wantUnits:    []string{"CX"},
		},
		{
			name:         "superstring is not a match",
			query:        "caixao de madeira",
			wantResidual: "caixao de madeira",
		},
		{
			name:         "volume token",
			query:        "buscar café 500ml",
			wantResidual: "buscar café",
			wantVolume:   "%500ml%",
		},
		{
			name:         "volume token with space",
			query:        "refrigerante 500 ml",
			wantResidual: "refrigerante",
			wantVolume:   "%500ml%",
		},
		{
			name:         "kg suffix wins over g",
			query:        "arroz 5kg",
			wantResidual: "arroz",
			wantVolume:   "%5kg%",
		},
		{
			name:         "alias and volume together",
			query:        "coca lata 350ml",
			wantResidual: "coca",
			wantUnits:    []string{"LT"},
			wantVolume:   "%350ml%",
		},
		{
			name:         "case insensitive",
			query:        "LEITE CAIXA",
			wantResidual: "leite",
			wantUnits:    []string{"CX"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			residual, filters, err := e.Extract(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if residual != tt.wantResidual {
				t.Errorf("residual = %q, want %q", residual, tt.wantResidual)
			}
			if len(filters.Units) != len(tt.wantUnits) {
				t.Fatalf("units = %v, want %v", filters.Units, tt.wantUnits)
			}
			for i, u := range tt.wantUnits {
				if filters.Units[i] != u {
					t.Errorf("units = %v, want %v", filters.Units, tt.wantUnits)
				}
			}
			if filters.VolumePattern != tt.wantVolume {
				t.Errorf("volume = %q, want %q", filters.VolumePattern, tt.wantVolume)
			}
		})
	}
}

func TestExtractRecognizesEveryVolumeSuffix(t *testing.T) {
	e := NewExtractor(&staticDict{})

	tests := []struct {
		query      string
		wantVolume string
	}{
		{"cafe 500g", "%500g%"},
		{"arroz 5kg", "%5kg%"},
		{"refrigerante 2l", "%2l%"},
		{"suco 300ml", "%300ml%"},
	}
	for _, tt := range tests {
		_, filters, err := e.Extract(context.Background(), tt.query)
		if err != nil {
			t.Fatalf("Extract(%q) error = %v", tt.query, err)
		}
		if filters.VolumePattern != tt.wantVolume {
			t.Errorf("Extract(%q) volume = %q, want %q", tt.query, filters.VolumePattern, tt.wantVolume)
		}
	}
}

func TestExtractEmptyFiltersDistinguishable(t *testing.T) {
	e := NewExtractor(&staticDict{aliases: map[string]string{"caixa": "CX"}})
	_, filters, err := e.Extract(context.Background(), "refrigerante qualquer")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !filters.Empty() {
		t.Errorf("expected empty filters, got %+v", filters)
	}
}

func TestExtractDictionaryFailurePropagates(t *testing.T) {
	wantErr := errors.New("store unreachable")
	e := NewExtractor(&staticDict{err: wantErr})
	_, _, err := e.Extract(context.Background(), "leite")
	if !errors.Is(err, wantErr) {
		t.Errorf("expected dictionary error to propagate, got %v", err)
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("café especial & (torrado)")
	want := []string{"café", "especial", "torrado"}
	if len(got) != len(want) {
		t.Fatalf("Tokens() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tokens() = %v, want %v", got, want)
		}
	}
}
