package validate

import "testing"

func TestEmail(t *testing.T) {
	if _, ok := Email("alice@example.com"); !ok {
		t.Fatal("valid email rejected")
	}
	for _, bad := range []string{"", "nope", "a@b", "   "} {
		if _, ok := Email(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestQtyClamps(t *testing.T) {
	if Qty("3") != 3 {
		t.Fatal("want 3")
	}
	if Qty("0") != 1 || Qty("-4") != 1 || Qty("junk") != 1 {
		t.Fatal("bad input must fall back to 1")
	}
	if Qty("9999") != 50 {
		t.Fatal("want clamp to 50")
	}
}

func TestPrice(t *testing.T) {
	if v, ok := Price("19.99"); !ok || v != 19.99 {
		t.Fatalf("got %v %v", v, ok)
	}
	for _, bad := range []string{"0", "-1", "abc", ""} {
		if _, ok := Price(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestRating(t *testing.T) {
	for s, want := range map[string]bool{"1": true, "5": true, "0": false, "6": false, "x": false} {
		if _, ok := Rating(s); ok != want {
			t.Fatalf("Rating(%q) = %v, want %v", s, ok, want)
		}
	}
}

func TestStatus(t *testing.T) {
	for _, good := range []string{"payment", "Shipping", " delivery ", "received"} {
		if _, ok := Status(good); !ok {
			t.Fatalf("rejected %q", good)
		}
	}
	if _, ok := Status("teleported"); ok {
		t.Fatal("accepted unknown status")
	}
}

func TestPassword(t *testing.T) {
	if !Password("Sup3rSecret") {
		t.Fatal("valid password rejected")
	}
	for _, bad := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		if Password(bad) {
			t.Fatalf("accepted %q", bad)
		}
	}
}
