package board

import "testing"

func TestDetectMainBoard(t *testing.T) {
	for _, code := range []string{"000001", "001289", "002594", "003816", "600519", "601318", "603288", "605117"} {
		if got := Detect(code); got != MainBoard {
			t.Fatalf("Detect(%s) = %s, want %s", code, got, MainBoard)
		}
	}
}

func TestDetectChiNext(t *testing.T) {
	for _, code := range []string{"300750", "301236"} {
		if got := Detect(code); got != ChiNext {
			t.Fatalf("Detect(%s) = %s, want %s", code, got, ChiNext)
		}
	}
}

func TestDetectSTAR(t *testing.T) {
	// The two-digit 68 prefix also covers 689 CDR listings.
	for _, code := range []string{"688981", "688036", "689009"} {
		if got := Detect(code); got != STARMarket {
			t.Fatalf("Detect(%s) = %s, want %s", code, got, STARMarket)
		}
	}
}

func TestDetectBeijingExchange(t *testing.T) {
	for _, code := range []string{"430047", "831010", "870199", "920002"} {
		if got := Detect(code); got != BeijingExchange {
			t.Fatalf("Detect(%s) = %s, want %s", code, got, BeijingExchange)
		}
	}
}

func TestDetectUnknownFallsBackToMainBoard(t *testing.T) {
	for _, code := range []string{"", "  ", "999999", "ABCDEF", "12"} {
		if got := Detect(code); got != MainBoard {
			t.Fatalf("Detect(%q) = %s, want %s", code, got, MainBoard)
		}
	}
}

func TestDetectTrimsWhitespace(t *testing.T) {
	if got := Detect("  600519 "); got != MainBoard {
		t.Fatalf("Detect with padding = %s, want %s", got, MainBoard)
	}
}

func TestValid(t *testing.T) {
	for _, b := range []Board{MainBoard, ChiNext, STARMarket, BeijingExchange} {
		if !Valid(b) {
			t.Fatalf("Valid(%s) = false", b)
		}
	}
	if Valid(Board("新三板")) {
		t.Fatal("Valid accepted an unknown board")
	}
}
