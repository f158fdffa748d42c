package envelope

import "testing"

func TestEnvMotion(t *testing.T) {
	const key = "ENVELOPE_TEST_REDUCED_MOTION"
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"reduce", true},
		{"REDUCE", true},
		{"no-preference", false},
	}
	q := EnvMotion(key)
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(key, tt.value)
			if got := q(); got != tt.want {
				t.Errorf("EnvMotion with %q = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestAnyMotion(t *testing.T) {
	if AnyMotion(nil, StaticMotion(false))() {
		t.Error("no source reports reduce")
	}
	if !AnyMotion(StaticMotion(false), StaticMotion(true))() {
		t.Error("one source reports reduce")
	}
}

func TestFieldStateString(t *testing.T) {
	if FieldActive.String() != "active" || FieldDisabled.String() != "disabled" {
		t.Errorf("got %q, %q", FieldActive, FieldDisabled)
	}
}
