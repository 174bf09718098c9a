package model

import "testing"

func TestDeriveKey(t *testing.T) {
	cases := []struct {
		title, want string
	}{
		{"Age", "age"},
		{"  First Name  ", "first_name"},
		{"Price (USD)", "price_usd"},
		{"user.email", "user.email"},
		{"Héllo Wörld", "hllo_wrld"},
		{"Tab\tSeparated", "tabseparated"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		got := DeriveKey(tc.title)
		if got != tc.want {
			t.Errorf("DeriveKey(%q) = %q, want %q", tc.title, got, tc.want)
		}
		if got != "" && !KeyPattern.MatchString(got) {
			t.Errorf("DeriveKey(%q) = %q does not match key pattern", tc.title, got)
		}
	}
}

func TestDeriveKey_Idempotent(t *testing.T) {
	for _, title := range []string{"Age", "Street Address 2", " mixed.CASE value ", "a__b"} {
		once := DeriveKey(title)
		if twice := DeriveKey(once); twice != once {
			t.Fatalf("DeriveKey not idempotent for %q: %q then %q", title, once, twice)
		}
	}
}

func TestTitleFromKey(t *testing.T) {
	cases := map[string]string{
		"first_name":       "First Name",
		"address.city":     "Address City",
		"billing.zip_code": "Billing Zip Code",
		"zipCode":          "Zip Code",
		"line2":            "Line 2",
		"legacy-id":        "Legacy Id",
		"a__b..c":          "A B C",
		"ünïcode_name":     "Ünïcode Name",
		"_.":               "",
		"":                 "",
	}
	for input, want := range cases {
		if got := TitleFromKey(input); got != want {
			t.Errorf("TitleFromKey(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTitleFromKey_RoundTripsDerivedKeys(t *testing.T) {
	for _, title := range []string{"Street Address 2", "Address City", "Zip Code"} {
		if got := TitleFromKey(DeriveKey(title)); got != title {
			t.Errorf("TitleFromKey(DeriveKey(%q)) = %q", title, got)
		}
	}
}
