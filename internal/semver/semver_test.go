package semver

import "testing"

func TestSatisfies(t *testing.T) {
	c, err := ParseConstraint("^1.2.0")
	if err != nil {
		t.Fatalf("parse constraint: %v", err)
	}

	if !Satisfies(MustParseVersion("1.2.0"), c) {
		t.Fatalf("expected 1.2.0 to satisfy ^1.2.0")
	}
	if !Satisfies(MustParseVersion("1.9.9"), c) {
		t.Fatalf("expected 1.9.9 to satisfy ^1.2.0")
	}
	if Satisfies(MustParseVersion("2.0.0"), c) {
		t.Fatalf("expected 2.0.0 to NOT satisfy ^1.2.0")
	}
}

func TestCompatibleWith(t *testing.T) {
	tests := []struct {
		current string
		stored  string
		want    bool
	}{
		{"1.4.0", "1.0.0", true},
		{"1.4.0", "1.9.2", true},
		{"1.4.0", "2.0.0", false},
		{"2.0.0", "1.9.0", false},
		{"1.4.0", "1.5.0-rc.1", true},
		{"0.3.1", "0.3.0", true},
		{"0.3.1", "0.4.0", false},
	}

	for _, tt := range tests {
		c := CompatibleWith(MustParseVersion(tt.current))
		if got := Satisfies(MustParseVersion(tt.stored), c); got != tt.want {
			t.Errorf("CompatibleWith(%s) accepts %s = %v, want %v", tt.current, tt.stored, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	if Compare(MustParseVersion("1.0.0"), MustParseVersion("1.0.1")) != -1 {
		t.Errorf("expected 1.0.0 < 1.0.1")
	}
	if Compare(Version{}, MustParseVersion("0.0.1")) != -1 {
		t.Errorf("expected zero version to sort first")
	}
	if MustParseVersion("v1.2.3").String() != "1.2.3" {
		t.Errorf("expected normalized version string")
	}
}

func TestParseVersion_Invalid(t *testing.T) {
	if _, err := ParseVersion("not-a-version"); err == nil {
		t.Fatalf("expected error")
	}
}
