package utils

import (
	"regexp"
	"strings"
	"unicode"
)

// Google Pay merchant captures frequently drag in fragments of the next
// transaction (amounts, times, id labels) because the layout text has no
// field delimiters. These patterns strip the known fragment shapes.
var (
	embeddedAmountPattern = regexp.MustCompile(`₹[\d,]+\.?\d*`)
	embeddedTimePattern   = regexp.MustCompile(`\d{1,2}:\d{2}[AP]M`)
	embeddedTxnIDPattern  = regexp.MustCompile(`(?i)UPI\s*Transaction\s*ID:?\s*\d+`)
	trailingLabelPattern  = regexp.MustCompile(`(?i)\b(Paidto|Receivedfrom|Paidby|UPI|Transaction|ID)\b.*`)
	wideGapPattern        = regexp.MustCompile(`\s{2,}|\t`)
)

// CleanMerchantName removes overmatched fragments from a raw Google Pay
// merchant capture. Applying it to an already-clean name is a no-op; an empty
// result falls back to "Unknown".
func CleanMerchantName(raw string) string {
	name := strings.TrimSpace(raw)

	name = embeddedAmountPattern.ReplaceAllString(name, "")
	name = embeddedTimePattern.ReplaceAllString(name, "")
	name = embeddedTxnIDPattern.ReplaceAllString(name, "")
	name = trailingLabelPattern.ReplaceAllString(name, "")

	name = strings.TrimSpace(strings.SplitN(name, "\n", 2)[0])

	// Anything longer than a plausible name is layout bleed; keep the first
	// wide-gap segment. Split always yields at least one segment, so a long
	// name without wide gaps passes through whole.
	if len(name) > 50 {
		name = strings.TrimSpace(wideGapPattern.Split(name, -1)[0])
	}

	name = strings.Join(strings.Fields(name), " ")

	if name == "" {
		return "Unknown"
	}
	return name
}

// AddSpacesToName rebuilds spacing in concatenated Google Pay merchant names
// like "MissRUCHIKASUBHASHPANDE" by inserting a space at every lower-to-upper
// boundary. Runs of consecutive uppercase stay joined, so fully capitalised
// concatenations come back unchanged. Names that already contain a space, or
// are shorter than 3 runes, are returned as-is.
func AddSpacesToName(name string) string {
	runes := []rune(name)
	if len(runes) < 3 {
		return name
	}
	if strings.Contains(name, " ") {
		return name
	}

	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	spaced := b.String()

	spaced = strings.ReplaceAll(spaced, "Mr ", "Mr. ")
	spaced = strings.ReplaceAll(spaced, "Mrs ", "Mrs. ")
	spaced = strings.ReplaceAll(spaced, "Dr ", "Dr. ")

	return spaced
}
