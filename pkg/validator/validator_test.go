package validator

import "testing"

type sample struct {
	Context   string `json:"context" validate:"required,notblank,max=10"`
	Sentiment string `json:"sentiment" validate:"omitempty,max=3"`
}

func TestValidate(t *testing.T) {
	v := New()

	if err := v.Validate(&sample{Context: "hello"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]struct {
		in   sample
		want string
	}{
		"missing":  {sample{}, "context is required"},
		"blank":    {sample{Context: "   "}, "context is required"},
		"too long": {sample{Context: "hello", Sentiment: "Surprise"}, "sentiment must be at most 3 characters"},
	}

	for name, tc := range cases {
		err := v.Validate(&tc.in)
		if err == nil || err.Error() != tc.want {
			t.Errorf("%s: got %v, want %q", name, err, tc.want)
		}
	}
}
