package embedding

import "testing"

func TestWordTokenizer_Tokenize(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxTokens int
		wantLen   int
		wantMask  int
	}{
		{"two words", "Deep Learning", 8, 8, 4},
		{"empty", "", 8, 8, 2},
		{"truncated", "a b c d e f g h i j", 5, 5, 5},
		{"default length", "x", 0, 256, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewWordTokenizer().Tokenize(tt.text, tt.maxTokens)
			if len(enc.InputIDs) != tt.wantLen || len(enc.TokenTypeIDs) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(enc.InputIDs), tt.wantLen)
			}
			if enc.InputIDs[0] != tokenCLS {
				t.Errorf("first token = %d, want CLS", enc.InputIDs[0])
			}
			mask := 0
			for _, m := range enc.AttentionMask {
				mask += int(m)
			}
			if mask != tt.wantMask {
				t.Errorf("attention mask sum = %d, want %d", mask, tt.wantMask)
			}
		})
	}
}

func TestWordTokenizer_CaseInsensitive(t *testing.T) {
	a := NewWordTokenizer().Tokenize("MongoDB", 4)
	b := NewWordTokenizer().Tokenize("mongodb", 4)
	if a.InputIDs[1] != b.InputIDs[1] {
		t.Error("token IDs should not depend on case")
	}
	if a.InputIDs[1] < 1000 {
		t.Errorf("word id %d collides with reserved ids", a.InputIDs[1])
	}
}
