package recordssvc

import (
	"regexp"
	"testing"
)

func TestLotSearchPatternHyphenTolerance(t *testing.T) {
	pattern := LotSearchPattern("916-4B")
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		t.Fatalf("pattern does not compile: %v", err)
	}

	for _, s := range []string{"916-4B", "9164B", "91-64-B", "9164b"} {
		if !re.MatchString(s) {
			t.Errorf("pattern %q should match %q", pattern, s)
		}
	}
	if re.MatchString("9165B") {
		t.Errorf("pattern %q must not match a different lot", pattern)
	}
}

func TestLotSearchPatternPlainTerm(t *testing.T) {
	pattern := LotSearchPattern("ABC")
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		t.Fatalf("pattern does not compile: %v", err)
	}
	for _, s := range []string{"ABC", "A-B-C", "AB-C"} {
		if !re.MatchString(s) {
			t.Errorf("pattern %q should match %q", pattern, s)
		}
	}
}

func TestLotSearchPatternEscapesMetaChars(t *testing.T) {
	pattern := LotSearchPattern("9.6*4")
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		t.Fatalf("pattern does not compile: %v", err)
	}
	if !re.MatchString("9.6*4") {
		t.Error("pattern should match the literal term")
	}
	if re.MatchString("9X6664") {
		t.Error("dot and star must be treated as literals, not regex operators")
	}
}
