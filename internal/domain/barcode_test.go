package domain

import "testing"

func TestComposeBarcode_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		sequence int64
		prefix   string
	}{
		{"zero sequence", 0, ""},
		{"small sequence", 42, ""},
		{"max sequence", BarcodeMaxSequence, ""},
		{"with category prefix", 42, "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			barcode, err := ComposeBarcode(tt.sequence, tt.prefix)
			if err != nil {
				t.Fatalf("ComposeBarcode(%d, %q) returned error: %v", tt.sequence, tt.prefix, err)
			}
			if len(barcode) != BarcodeLength {
				t.Fatalf("expected length %d, got %d (%q)", BarcodeLength, len(barcode), barcode)
			}
			if !ValidateBarcodeFormat(barcode) {
				t.Fatalf("composed barcode %q does not match the expected format", barcode)
			}
			if _, err := ParseBarcode(barcode); err != nil {
				t.Fatalf("ParseBarcode(%q) failed on a freshly composed barcode: %v", barcode, err)
			}
		})
	}
}

func TestComposeBarcode_SequenceOutOfRange(t *testing.T) {
	if _, err := ComposeBarcode(-1, ""); err == nil {
		t.Error("expected an error for a negative sequence")
	}
	if _, err := ComposeBarcode(BarcodeMaxSequence+1, ""); err == nil {
		t.Error("expected an error for a sequence past BarcodeMaxSequence")
	}
}

func TestComposeBarcode_PrefixTooLong(t *testing.T) {
	if _, err := ComposeBarcode(1, "123456789"); err == nil {
		t.Error("expected an error when the category prefix fills every sequence digit")
	}
}

func TestParseBarcode_RejectsMalformedInput(t *testing.T) {
	tests := []string{
		"",
		"123",
		"abcdefghijk",
		"1234567890",  // 10 digits, one short
		"123456789012", // 12 digits, one long
	}
	for _, s := range tests {
		if _, err := ParseBarcode(s); err == nil {
			t.Errorf("ParseBarcode(%q) expected a format error, got none", s)
		}
	}
}

func TestParseBarcode_RejectsChecksumMismatch(t *testing.T) {
	barcode, err := ComposeBarcode(12345, "")
	if err != nil {
		t.Fatalf("ComposeBarcode failed: %v", err)
	}
	// Flip the checksum's last digit so it no longer matches.
	lastDigit := barcode[len(barcode)-1]
	flipped := (lastDigit-'0'+1)%10 + '0'
	tampered := barcode[:len(barcode)-1] + string(flipped)

	if _, err := ParseBarcode(tampered); err == nil {
		t.Errorf("ParseBarcode(%q) expected a checksum mismatch error, got none", tampered)
	}
}

func TestParseBarcode_EmbeddedNumberIgnoresPrefixOverride(t *testing.T) {
	barcode, err := ComposeBarcode(5, "12")
	if err != nil {
		t.Fatalf("ComposeBarcode failed: %v", err)
	}
	number, err := ParseBarcode(barcode)
	if err != nil {
		t.Fatalf("ParseBarcode(%q) failed: %v", barcode, err)
	}
	// The category prefix replaced the leading digits, so the parsed number
	// reflects that overridden 9-digit string, not the original sequence 5.
	if number == 5 {
		t.Errorf("expected the parsed number to reflect the prefixed digits, got the raw sequence back")
	}
}
