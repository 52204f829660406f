package repo

import "testing"

func TestFormatLimitOffset(t *testing.T) {
	cases := []struct {
		limit  int
		offset int
		want   string
	}{
		{0, 0, ""},
		{10, 0, "LIMIT 10"},
		{0, 5, "OFFSET 5"},
		{10, 5, "LIMIT 10 OFFSET 5"},
		{-1, -1, ""},
	}
	for _, tc := range cases {
		if got := FormatLimitOffset(tc.limit, tc.offset); got != tc.want {
			t.Fatalf("FormatLimitOffset(%d, %d) = %q, want %q", tc.limit, tc.offset, got, tc.want)
		}
	}
}
