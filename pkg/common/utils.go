package common

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
)

func GenerateTrxNo() string {
	const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	result := make([]byte, 7)
	for i := range result {
		result[i] = characters[r.Intn(len(characters))]
	}
	return string(result)
}

var (
	phoneStripPattern         = regexp.MustCompile(`[\s\-]`)
	phoneInternationalPattern = regexp.MustCompile(`^\+\d{1,3}\d{9,13}$`)
	phoneLocalPattern         = regexp.MustCompile(`^0\d{9,10}$`)
	phoneSimplePattern        = regexp.MustCompile(`^\d{10,15}$`)
)

// IsValidPhoneNumber accepts international (+1 801 234 5678), local
// (08012345678) and plain digit (2348012345678) formats. Spaces and hyphens
// are ignored.
func IsValidPhoneNumber(phone string) bool {
	clean := phoneStripPattern.ReplaceAllString(strings.TrimSpace(phone), "")
	return phoneInternationalPattern.MatchString(clean) ||
		phoneLocalPattern.MatchString(clean) ||
		phoneSimplePattern.MatchString(clean)
}
