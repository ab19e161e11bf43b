package utils

import "testing"

func TestSerialCodeRoundTrip(t *testing.T) {
	code, err := EncodeSerialCode("POS12-000042", "TERM-POS-12")
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if code[0] != 's' {
		t.Errorf("Expected 's' prefix, got %q", code)
	}

	decoded, err := DecodeSerialCode(code)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if decoded.Serial != "POS12-000042" {
		t.Errorf("Expected serial POS12-000042, got %s", decoded.Serial)
	}
	if decoded.SKU != "TERM-POS-12" {
		t.Errorf("Expected SKU TERM-POS-12, got %s", decoded.SKU)
	}
}

func TestDecodeSerialCode_LowercaseInput(t *testing.T) {
	code, err := EncodeSerialCode("abc123", "sku9")
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	decoded, err := DecodeSerialCode(code)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if decoded.Serial != "ABC123" || decoded.SKU != "SKU9" {
		t.Errorf("Expected uppercased parts, got %+v", decoded)
	}
}

func TestDecodeSerialCode_Invalid(t *testing.T) {
	cases := []string{
		"",
		"s",
		"s5ab",           // Data shorter than declared suffix
		"1234567890128",  // Plain EAN, no prefix
		"x4ABCDSKU1",     // Unknown prefix
	}
	for _, c := range cases {
		if _, err := DecodeSerialCode(c); err == nil {
			t.Errorf("Expected error for %q", c)
		}
	}
}

func TestIsSerialCode(t *testing.T) {
	if !IsSerialCode("s4ABC123SKU1") {
		t.Error("Serial label should be detected")
	}
	if IsSerialCode("4006381333931") {
		t.Error("Plain EAN should not be detected as serial label")
	}
}

func TestEncodeSerialCode_SuffixTooLong(t *testing.T) {
	longSKU := "0123456789012345678901234567890123456789"
	if _, err := EncodeSerialCode("SER", longSKU); err == nil {
		t.Error("Expected error for oversized SKU suffix")
	}
}
