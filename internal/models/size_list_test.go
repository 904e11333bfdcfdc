package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

type sizeDoc struct {
	Sizes SizeList `bson:"sizes"`
}

func TestSizeListDecodesArray(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"sizes": []string{"S", "M", "L"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc sizeDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Sizes) != 3 || doc.Sizes[0] != "S" || doc.Sizes[2] != "L" {
		t.Fatalf("unexpected sizes: %v", doc.Sizes)
	}
}

func TestSizeListDecodesLegacyCommaString(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"sizes": "S, M ,L,,XL"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc sizeDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"S", "M", "L", "XL"}
	if len(doc.Sizes) != len(want) {
		t.Fatalf("expected %v, got %v", want, doc.Sizes)
	}
	for i := range want {
		if doc.Sizes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, doc.Sizes)
		}
	}
}

func TestSizeListDecodesNull(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"sizes": nil})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc sizeDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Sizes != nil {
		t.Fatalf("expected nil sizes, got %v", doc.Sizes)
	}
}

func TestSizeListMarshalsAsArray(t *testing.T) {
	raw, err := bson.Marshal(sizeDoc{Sizes: SizeList{"M", "L"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var generic bson.M
	if err := bson.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := generic["sizes"].(bson.A); !ok {
		t.Fatalf("expected sizes to round-trip as array, got %T", generic["sizes"])
	}
}

func TestSplitSizes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"S,M,L", 3},
		{" S , M ", 2},
		{"", 0},
		{",,", 0},
		{"XL", 1},
	}
	for _, tt := range tests {
		if got := SplitSizes(tt.in); len(got) != tt.want {
			t.Fatalf("SplitSizes(%q) = %v, want %d entries", tt.in, got, tt.want)
		}
	}
}
