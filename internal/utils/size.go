package utils

import (
	"strconv"
	"strings"
)

const sizeUnitStep = 1024

var sizeUnits = []string{"b", "kb", "mb", "gb", "tb"}

// FormatFileSize renders a byte count for log lines, e.g. "512b", "1.5kb", "12mb".
// Values below ten units keep one decimal place; negative input renders as "0b".
func FormatFileSize(byteCount int64) string {
	if byteCount < sizeUnitStep {
		if byteCount < 0 {
			byteCount = 0
		}
		return strconv.FormatInt(byteCount, 10) + sizeUnits[0]
	}
	scaled := float64(byteCount)
	unitIndex := 0
	for scaled >= sizeUnitStep && unitIndex < len(sizeUnits)-1 {
		scaled /= sizeUnitStep
		unitIndex++
	}
	precision := 0
	if scaled < 10 {
		precision = 1
	}
	formatted := strconv.FormatFloat(scaled, 'f', precision, 64)
	return strings.TrimSuffix(formatted, ".0") + sizeUnits[unitIndex]
}
