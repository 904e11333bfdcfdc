package handlers

import "testing"

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || limit != 20 {
		t.Fatalf("expected defaults 1/20, got %d/%d", page, limit)
	}
}

func TestParsePaginationParamsExplicit(t *testing.T) {
	page, limit, err := parsePaginationParams("3", "50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 3 || limit != 50 {
		t.Fatalf("expected 3/50, got %d/%d", page, limit)
	}
}

func TestParsePaginationParamsRejectsBadInput(t *testing.T) {
	for _, args := range [][2]string{
		{"0", "10"},
		{"-1", "10"},
		{"abc", "10"},
		{"1", "0"},
		{"1", "nope"},
	} {
		if _, _, err := parsePaginationParams(args[0], args[1]); err == nil {
			t.Fatalf("expected error for page=%q limit=%q", args[0], args[1])
		}
	}
}
