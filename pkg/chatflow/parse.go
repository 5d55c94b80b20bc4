package chatflow

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`\b\d{10}\b`)
	panPattern   = regexp.MustCompile(`(?i)\b[A-Z]{5}[0-9]{4}[A-Z]\b`)

	phoneExact = regexp.MustCompile(`^\d{10}$`)
	panExact   = regexp.MustCompile(`(?i)^[A-Z]{5}[0-9]{4}[A-Z]$`)

	unitAmountPattern = regexp.MustCompile(`(?i)(\d+(?:,\d+)*(?:\.\d+)?)\s*(lakh|lakhs|crore|crores|thousand|thousands|k|cr)`)
	bareAmountPattern = regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d+)?)`)
)

// ParseIdentity pulls a 10-digit phone and/or a PAN out of free text. PANs
// are normalized to upper case.
func ParseIdentity(text string) (phone, pan string) {
	if m := phonePattern.FindString(text); m != "" {
		phone = m
	}
	if m := panPattern.FindString(text); m != "" {
		pan = strings.ToUpper(m)
	}
	return phone, pan
}

// ClassifyIdentity validates a single extracted token as either a phone or
// a PAN. Both empty means the token was neither.
func ClassifyIdentity(token string) (phone, pan string) {
	token = strings.TrimSpace(token)
	if phoneExact.MatchString(token) {
		return token, ""
	}
	if panExact.MatchString(token) {
		return "", strings.ToUpper(token)
	}
	return "", ""
}

// ParseAmount reads an Indian-style amount phrase ("5 lakh", "2.5 crore",
// "50k", "₹5,00,000") into rupees. Returns 0 when no positive amount is
// present.
func ParseAmount(text string) float64 {
	if m := unitAmountPattern.FindStringSubmatch(text); m != nil {
		num, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			return 0
		}
		unit := strings.ToLower(m[2])
		switch {
		case strings.Contains(unit, "crore") || unit == "cr":
			return num * 10000000
		case strings.Contains(unit, "lakh"):
			return num * 100000
		case strings.Contains(unit, "thousand") || unit == "k":
			return num * 1000
		default:
			return num
		}
	}

	if m := bareAmountPattern.FindStringSubmatch(text); m != nil {
		num, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			return 0
		}
		return num
	}

	return 0
}

// CleanExtractedAmount parses a model-extracted amount string, tolerating
// rupee signs, commas and stray spaces.
func CleanExtractedAmount(s string) float64 {
	cleaned := strings.NewReplacer("₹", "", ",", "", " ", "").Replace(s)
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return num
}

// FormatRupees renders an amount with Indian digit grouping (12,34,567).
func FormatRupees(amount float64) string {
	whole := strconv.FormatFloat(amount, 'f', 0, 64)

	neg := false
	if strings.HasPrefix(whole, "-") {
		neg = true
		whole = whole[1:]
	}

	if len(whole) > 3 {
		head := whole[:len(whole)-3]
		tail := whole[len(whole)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		whole = strings.Join(append(groups, tail), ",")
	}

	if neg {
		return "-" + whole
	}
	return whole
}
