// Package strength classifies candidate passwords into advisory tiers.
//
// The score is the number of satisfied criteria among: at least 8 characters,
// an uppercase ASCII letter, a lowercase ASCII letter, a digit, and one of the
// special characters @#$%^&+=!. A score of 0–2 is Weak, 3–4 is Medium and 5
// is Strong. Classification never blocks anything on its own.
package strength

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Tier is a strength classification. Tiers are ordered: Weak < Medium < Strong.
type Tier int

const (
	Weak Tier = iota
	Medium
	Strong
)

const (
	minLength    = 8
	specialChars = "@#$%^&+=!"
)

func (t Tier) String() string {
	switch t {
	case Weak:
		return "Weak"
	case Medium:
		return "Medium"
	case Strong:
		return "Strong"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// ParseTier reads a tier name, case-insensitively.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weak":
		return Weak, nil
	case "medium":
		return Medium, nil
	case "strong":
		return Strong, nil
	default:
		return Weak, fmt.Errorf("unknown strength tier %q", s)
	}
}

// Score returns the number of satisfied criteria, 0 to 5.
func Score(password string) int {
	var hasUpper, hasLower, hasDigit, hasSpecial bool

	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	score := 0
	for _, ok := range []bool{utf8.RuneCountInString(password) >= minLength, hasUpper, hasLower, hasDigit, hasSpecial} {
		if ok {
			score++
		}
	}
	return score
}

// Classify maps the password's score to a Tier.
func Classify(password string) Tier {
	switch score := Score(password); {
	case score <= 2:
		return Weak
	case score <= 4:
		return Medium
	default:
		return Strong
	}
}
