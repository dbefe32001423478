// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// ParseUintID parses a path parameter as a positive integer identifier.
// It returns (0, false) for empty, non-numeric, zero, or out-of-range input.
//
// Example:
//
//	id, ok := utils.ParseUintID("42") // 42, true
//	id, ok = utils.ParseUintID("abc") // 0, false
//	id, ok = utils.ParseUintID("0")   // 0, false
func ParseUintID(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
