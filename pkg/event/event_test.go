package event

import (
	"slices"
	"testing"
)

func TestKeyNaming(t *testing.T) {
	key := Key{Year: 2021, Code: "QAT"}

	if got := key.String(); got != "2021-QAT" {
		t.Errorf("String() = %q", got)
	}
	if got := key.Filename(Race); got != "2021-QAT-RAC.pdf" {
		t.Errorf("Filename(Race) = %q", got)
	}
	if got := key.Filename(Practice); got != "2021-QAT-FP4.pdf" {
		t.Errorf("Filename(Practice) = %q", got)
	}
	if got := key.CSVName(); got != "2021-QAT.csv" {
		t.Errorf("CSVName() = %q", got)
	}
	if Race.Dir() != "Race" || Practice.Dir() != "FP" {
		t.Errorf("Unexpected dirs %q %q", Race.Dir(), Practice.Dir())
	}
}

func TestKeyURL(t *testing.T) {
	key := Key{Year: 2019, Code: "MAL"}
	base := "https://resources.motogp.com/files/results/"

	tests := []struct {
		kind Kind
		want string
	}{
		{Race, "https://resources.motogp.com/files/results/2019/MAL/MotoGP/RAC/Classification.pdf"},
		{Practice, "https://resources.motogp.com/files/results/2019/MAL/MotoGP/FP4/Analysis.pdf"},
	}
	for _, tt := range tests {
		if got := key.URL(base, "MotoGP", tt.kind); got != tt.want {
			t.Errorf("URL(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name     string
		wantKey  Key
		wantKind Kind
		wantOK   bool
	}{
		{"2021-QAT-RAC.pdf", Key{2021, "QAT"}, Race, true},
		{"2013-ARA-FP4.pdf", Key{2013, "ARA"}, Practice, true},
		{".gitkeep", Key{}, "", false},
		{"2021-QAT-FP3.pdf", Key{}, "", false},
		{"2021-qat-RAC.pdf", Key{}, "", false},
		{"2021-QAT-RAC.pdf.part", Key{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, kind, ok := ParseFilename(tt.name)
			if ok != tt.wantOK || key != tt.wantKey || kind != tt.wantKind {
				t.Errorf("ParseFilename(%q) = %v, %q, %v", tt.name, key, kind, ok)
			}
			if ok && key.Filename(kind) != tt.name {
				t.Errorf("Filename round trip gave %q", key.Filename(kind))
			}
		})
	}
}

func TestUniverse(t *testing.T) {
	u := DefaultUniverse()
	keys := u.Keys()
	if len(keys) != 10*30 {
		t.Fatalf("Expected 300 keys, got %d", len(keys))
	}
	if keys[0] != (Key{2013, "QAT"}) || keys[len(keys)-1] != (Key{2022, "ALR"}) {
		t.Errorf("Unexpected enumeration bounds %v .. %v", keys[0], keys[len(keys)-1])
	}
	if start, end := u.Years(); start != 2013 || end != 2022 {
		t.Errorf("Expected years 2013..2022, got %d..%d", start, end)
	}
	if !u.Contains(Key{2020, "TER"}) || u.Contains(Key{2023, "QAT"}) || u.Contains(Key{2020, "XXX"}) {
		t.Error("Contains gave an unexpected answer")
	}

	codes := u.Codes()
	codes[0] = "ZZZ"
	if !slices.Equal(u.Codes(), DefaultCodes()) {
		t.Error("Universe must not share its code slice")
	}

	for _, bad := range []struct {
		start, end int
		codes      []string
	}{
		{2022, 2013, DefaultCodes()},
		{2013, 2022, nil},
		{2013, 2022, []string{"qat"}},
	} {
		if _, err := NewUniverse(bad.start, bad.end, bad.codes); err == nil {
			t.Errorf("NewUniverse(%d, %d, %v) should fail", bad.start, bad.end, bad.codes)
		}
	}
}

func TestCompare(t *testing.T) {
	keys := []Key{{2021, "QAT"}, {2020, "VAL"}, {2021, "AME"}}
	slices.SortFunc(keys, Compare)
	want := []Key{{2020, "VAL"}, {2021, "AME"}, {2021, "QAT"}}
	if !slices.Equal(keys, want) {
		t.Errorf("sorted = %v, want %v", keys, want)
	}
}
