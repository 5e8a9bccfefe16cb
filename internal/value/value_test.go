// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package value

import (
	"testing"
)

func TestIsZeroSizedType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{
			name: "struct{}",
			got:  IsZST[struct{}](),
			want: true,
		},
		{
			name: "[0]byte",
			got:  IsZST[[0]byte](),
			want: true,
		},
		{
			name: "int",
			got:  IsZST[int](),
			want: false,
		},
		{
			name: "string",
			got:  IsZST[string](),
			want: false,
		},
		{
			name: "[4]struct{}",
			got:  IsZST[[4]struct{}](),
			want: true,
		},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s, want %v, got %v", tt.name, tt.want, tt.got)
		}
	}
}

type caseless string

func (c caseless) Equal(other caseless) bool {
	return len(c) == len(other)
}

func TestEqual(t *testing.T) {
	t.Parallel()

	if !Equal([]int{1, 2}, []int{1, 2}) {
		t.Error("Equal on equal slices, expected true")
	}
	if Equal([]int{1, 2}, []int{2, 1}) {
		t.Error("Equal on different slices, expected false")
	}
	// Equaler wins over DeepEqual
	if !Equal(caseless("abc"), caseless("xyz")) {
		t.Error("Equal with Equaler, expected true")
	}
}

type counter struct {
	n *int
}

func (c counter) Clone() counter {
	n := *c.n
	return counter{n: &n}
}

type pointerCloner struct {
	val int
}

func (p *pointerCloner) Clone() *pointerCloner {
	if p == nil {
		return nil
	}
	return &pointerCloner{val: p.val}
}

func TestClonerOf(t *testing.T) {
	t.Parallel()

	if fn := ClonerOf[int](); fn != nil {
		t.Error("ClonerOf[int], expected nil func")
	}
	if fn := ClonerOf[*pointerCloner](); fn == nil {
		t.Error("ClonerOf[*pointerCloner], expected clone func")
	}

	fn := ClonerOf[counter]()
	if fn == nil {
		t.Fatal("ClonerOf[counter], expected clone func")
	}

	n := 1
	orig := counter{n: &n}
	clone := fn(orig)
	*clone.n = 2

	if *orig.n != 1 {
		t.Errorf("clone shares memory with original, got %d", *orig.n)
	}
}

func TestCloneNilPointer(t *testing.T) {
	t.Parallel()

	var p *pointerCloner
	if got := Clone(p); got != nil {
		t.Errorf("Clone(nil), expected nil, got %v", got)
	}

	p = &pointerCloner{val: 3}
	if got := Clone(p); got == p || got.val != 3 {
		t.Errorf("Clone, expected distinct copy, got %v", got)
	}

	if got := Clone(42); got != 42 {
		t.Errorf("Clone(42), expected 42, got %v", got)
	}
}
