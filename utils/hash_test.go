package utils

import "testing"

func TestHashText(t *testing.T) {
	h1 := HashText("hello world")
	h2 := HashText("hello world")
	h3 := HashText("hello worlds")

	if h1 != h2 {
		t.Error("identical content should hash identically")
	}
	if h1 == h3 {
		t.Error("different content should hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestTruncateHash(t *testing.T) {
	h := HashText("content")
	if got := TruncateHash(h, 8); len(got) != 8 {
		t.Errorf("TruncateHash length = %d, want 8", len(got))
	}
	if got := TruncateHash("abc", 8); got != "abc" {
		t.Errorf("TruncateHash(short) = %q, want %q", got, "abc")
	}
}
