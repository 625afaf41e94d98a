package baumann

import (
	"testing"
	"time"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name           string
		do, sr, pn, wt int
		want           string
	}{
		{"all lower letters", 26, 29, 30, 40, "DRNT"},
		{"all upper letters", 27, 30, 31, 41, "OSPW"},
		{"upper bounds inclusive", 44, 75, 45, 85, "OSPW"},
		{"below all ranges falls back", 0, 0, 0, 0, "DRNT"},
		{"above all ranges falls back", 100, 100, 100, 100, "DRNT"},
		{"mixed", 40, 35, 35, 50, "OSPW"},
		{"mixed low", 11, 18, 10, 20, "DRNT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.do, tt.sr, tt.pn, tt.wt)
			if got != tt.want {
				t.Errorf("Classify(%d, %d, %d, %d) = %q, want %q", tt.do, tt.sr, tt.pn, tt.wt, got, tt.want)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	first := Classify(40, 35, 35, 50)
	for i := 0; i < 10; i++ {
		if got := Classify(40, 35, 35, 50); got != first {
			t.Fatalf("Classify not deterministic: got %q then %q", first, got)
		}
	}
}

func TestDescribeDO(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{44, "매우 유분이 많은 피부 (악지성)"},
		{33, "매우 유분이 많은 피부 (악지성)"},
		{32, "약간 유분이 많은 피부 (약간 지성)"},
		{27, "약간 유분이 많은 피부 (약간 지성)"},
		{26, "약간 건조한 피부 (약간 건성)"},
		{17, "약간 건조한 피부 (약간 건성)"},
		{16, "매우 건조한 피부 (건성)"},
		{0, "매우 건조한 피부 (건성)"},
	}
	for _, tt := range tests {
		if got := DescribeDO(tt.score); got != tt.want {
			t.Errorf("DescribeDO(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestDescribeSR(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{72, "매우 민감한 피부"},
		{34, "매우 민감한 피부"},
		{33, "약간 민감한 피부"},
		{30, "약간 민감한 피부"},
		{29, "약간 저항성이 있는 피부"},
		{25, "약간 저항성이 있는 피부"},
		{24, "저항성이 강한 피부"},
		{0, "저항성이 강한 피부"},
	}
	for _, tt := range tests {
		if got := DescribeSR(tt.score); got != tt.want {
			t.Errorf("DescribeSR(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestDescribePNAndWT(t *testing.T) {
	if got := DescribePN(31); got != "과색소침착피부" {
		t.Errorf("DescribePN(31) = %q", got)
	}
	if got := DescribePN(30); got != "비과색소침착피부" {
		t.Errorf("DescribePN(30) = %q", got)
	}
	if got := DescribeWT(41); got != "주름에 취약한 피부" {
		t.Errorf("DescribeWT(41) = %q", got)
	}
	if got := DescribeWT(40); got != "탄력 있는 피부" {
		t.Errorf("DescribeWT(40) = %q", got)
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday today", time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC), 25},
		{"birthday tomorrow", time.Date(2000, 6, 16, 0, 0, 0, 0, time.UTC), 24},
		{"birthday passed", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 25},
		{"birthday later this year", time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC), 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Age(&tt.birth, now)
			if !ok {
				t.Fatal("Age returned ok=false for a non-nil birth")
			}
			if got != tt.want {
				t.Errorf("Age(%v) = %d, want %d", tt.birth, got, tt.want)
			}
		})
	}

	if _, ok := Age(nil, now); ok {
		t.Error("Age(nil) should return ok=false")
	}
}
