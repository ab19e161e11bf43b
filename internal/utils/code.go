package utils

import (
	"errors"
	"fmt"
	"strings"
)

// Serialized equipment labels use a compact code:
//
//	s [SplitChar] [Serial...] [SKU...]
//
// SplitChar is a base36 digit giving the length of the SKU suffix; the
// rest is the unit serial number. Plain retail barcodes (EAN/UPC) carry
// no prefix and are passed through untouched.
const codeBase36Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SerialCode is a decoded serialized-equipment label
type SerialCode struct {
	Serial string // Unique unit serial number
	SKU    string // Catalog product reference
}

// IsSerialCode reports whether a scanned barcode is a serialized label
func IsSerialCode(code string) bool {
	return len(code) >= 3 && (code[0] == 's' || code[0] == 'S')
}

// DecodeSerialCode splits a serialized label into serial and SKU parts
func DecodeSerialCode(code string) (*SerialCode, error) {
	if !IsSerialCode(code) {
		return nil, errors.New("invalid serial code")
	}

	code = strings.ToUpper(code)

	// 2nd char is the suffix length (base36)
	suffixLen := base36ToInt(string(code[1]))
	if suffixLen < 0 {
		return nil, errors.New("invalid split character")
	}

	dataPart := code[2:]
	if len(dataPart) <= suffixLen {
		return nil, errors.New("code too short for specified split length")
	}

	splitIdx := len(dataPart) - suffixLen
	return &SerialCode{
		Serial: dataPart[:splitIdx],
		SKU:    dataPart[splitIdx:],
	}, nil
}

// EncodeSerialCode builds the label code for a serial/SKU pair
func EncodeSerialCode(serial, sku string) (string, error) {
	if len(sku) > 35 {
		return "", fmt.Errorf("sku too long for code suffix: %d chars", len(sku))
	}
	splitChar := string(codeBase36Chars[len(sku)])
	return "s" + splitChar + strings.ToUpper(serial) + strings.ToUpper(sku), nil
}

// base36ToInt converts a single base36 character to its value, -1 if invalid
func base36ToInt(c string) int {
	return strings.Index(codeBase36Chars, strings.ToUpper(c))
}
