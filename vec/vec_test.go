package vec

import (
	"math"
	"testing"
)

func TestArith(t *testing.T) {
	v := Vec{1, 2}
	u := Vec{3, -4}

	tests := []struct {
		name string
		got  Vec
		want Vec
	}{
		{"add", v.Add(u), Vec{4, -2}},
		{"sub", v.Sub(u), Vec{-2, 6}},
		{"scale", u.Scale(0.5), Vec{1.5, -2}},
		{"addscaled", v.AddScaled(2, u), Vec{7, -6}},
		{"new", New(2), Vec{0, 0}},
	}
	for _, test := range tests {
		if !test.got.Equal(test.want) {
			t.Errorf("%v: want %v, got %v", test.name, test.want, test.got)
		}
	}

	if !v.Equal(Vec{1, 2}) || !u.Equal(Vec{3, -4}) {
		t.Errorf("operands were modified: v=%v u=%v", v, u)
	}

	if n := u.Norm(); n != 5 {
		t.Errorf("norm: want 5, got %v", n)
	}
	if d := v.Dist(u); math.Abs(d-math.Sqrt(40)) > 1e-12 {
		t.Errorf("dist: want %v, got %v", math.Sqrt(40), d)
	}
}

func TestCopyDoesNotAlias(t *testing.T) {
	v := Vec{1, 2, 3}
	c := v.Copy()
	c[0] = 100
	if v[0] != 1 {
		t.Errorf("copy aliases original: %v", v)
	}
}

func TestMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("adding vectors of different lengths did not panic")
		}
	}()
	Vec{1, 2}.Add(Vec{1})
}
