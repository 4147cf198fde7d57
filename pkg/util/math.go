// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package util

import "math"

// Round2 rounds a value to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Ratio returns the quotient of two counts, or zero when the
// denominator is zero.
func Ratio(n int, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
