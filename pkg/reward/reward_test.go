package reward

import (
	"strings"
	"testing"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		score      int64
		trueEnding bool
		want       int64
	}{
		{
			name:  "zero score",
			score: 0,
			want:  100_000_000,
		},
		{
			name:  "score 500",
			score: 500,
			want:  150_000_000, // 0.1 + 500 * 0.0001
		},
		{
			name:       "score 500 with true ending",
			score:      500,
			trueEnding: true,
			want:       1_150_000_000,
		},
		{
			name:       "true ending only",
			score:      0,
			trueEnding: true,
			want:       1_100_000_000,
		},
		{
			name:  "clamped to max",
			score: 1_000_000, // 0.1 + 100.0 caps at 5.0
			want:  5_000_000_000,
		},
		{
			name:       "max with bonus still clamped",
			score:      1_000_000,
			trueEnding: true,
			want:       5_000_000_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Calculate(tt.score, tt.trueEnding); got != tt.want {
				t.Errorf("Calculate(%d, %v) = %d, want %d", tt.score, tt.trueEnding, got, tt.want)
			}
		})
	}
}

func TestCalculate_Monotonic(t *testing.T) {
	prev := int64(0)
	for score := int64(0); score <= 100_000; score += 1000 {
		amount := Calculate(score, false)
		if amount < prev {
			t.Fatalf("reward decreased: score %d gave %d, previous %d", score, amount, prev)
		}
		if amount < MinReward || amount > MaxReward {
			t.Fatalf("reward %d outside [%d, %d]", amount, MinReward, MaxReward)
		}
		prev = amount
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	first := Calculate(777, true)
	for i := 0; i < 5; i++ {
		if got := Calculate(777, true); got != first {
			t.Fatalf("same inputs gave %d then %d", first, got)
		}
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr string
	}{
		{"valid short", "0xabc123", ""},
		{"valid full length", "0x" + strings.Repeat("a", 64), ""},
		{"valid mixed case", "0xAbCdEf0123456789", ""},
		{"missing prefix", "abc123", "must start with 0x"},
		{"empty hex", "0x", "1-64 hex digits"},
		{"too long", "0x" + strings.Repeat("a", 65), "1-64 hex digits"},
		{"non-hex character", "0xabcg12", "non-hex"},
		{"empty", "", "must start with 0x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.addr)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid address, got: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %v does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateScore(t *testing.T) {
	if err := ValidateScore(0); err != nil {
		t.Errorf("score 0 should be valid: %v", err)
	}
	if err := ValidateScore(MaxScore); err != nil {
		t.Errorf("score at maximum should be valid: %v", err)
	}
	if err := ValidateScore(-1); err == nil {
		t.Error("negative score should be rejected")
	}
	if err := ValidateScore(MaxScore + 1); err == nil {
		t.Error("score above maximum should be rejected")
	}
}

func TestValidateSessionRef(t *testing.T) {
	if err := ValidateSessionRef("short"); err == nil {
		t.Error("short session reference should be rejected")
	}
	if err := ValidateSessionRef("session-12345"); err != nil {
		t.Errorf("plausible session reference rejected: %v", err)
	}
}
