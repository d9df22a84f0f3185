package ui

import (
	"reflect"
	"testing"
)

func TestTableColumns(t *testing.T) {
	cases := []struct {
		width int
		want  int
	}{
		{width: 40, want: 2},
		{width: 69, want: 2},
		{width: 70, want: 3},
		{width: 109, want: 3},
		{width: 110, want: 6},
		{width: 200, want: 6},
	}
	for _, tc := range cases {
		if got := TableColumns(tc.width); got != tc.want {
			t.Errorf("TableColumns(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}
}

func TestTableGridRowMajor(t *testing.T) {
	lines := []string{"A=1", "B=2", "C=3", "D=4", "E=5"}
	got := TableGrid(lines, 2)
	want := [][]string{
		{"A=1", "B=2"},
		{"C=3", "D=4"},
		{"E=5", ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TableGrid = %v, want %v", got, want)
	}
}

func TestTableGridEmpty(t *testing.T) {
	if got := TableGrid(nil, 3); len(got) != 0 {
		t.Fatalf("expected no rows, got %v", got)
	}
}
