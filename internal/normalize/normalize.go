// Package normalize holds the string cleanup applied to every scraped
// field before it is written to CSV.
package normalize

import (
	"regexp"
	"strings"
)

var (
	reZurPerson = regexp.MustCompile(`(?i)\bzur Person\b`)
	reMoll      = regexp.MustCompile(`(?i)-moll`)
	reDur       = regexp.MustCompile(`(?i)-dur`)

	// \x{00A0} is listed with \s because RE2 \s does not match it.
	reYearSpan  = regexp.MustCompile(`\([\s\x{00A0}]*\d{3,4}[\s\x{00A0}]*[–-][\s\x{00A0}]*\d{1,4}[\s\x{00A0}]*\)`)
	reYearParen = regexp.MustCompile(`[\(\[][\s\x{00A0}]*\d{3,4}[\s\x{00A0}]*[\)\]]`)
	reBareYear  = regexp.MustCompile(`\b\d{3,4}\b`)
	reMultiWS   = regexp.MustCompile(`[\s\x{00A0}]{2,}`)
)

// Spaces trims s and collapses every whitespace run to a single space.
func Spaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func StripZurPerson(s string) string {
	if s == "" {
		return ""
	}

	return Spaces(reZurPerson.ReplaceAllString(s, ""))
}

// Key drops the mode suffix from a key name: "f-Moll" -> "f", "Es-Dur" -> "Es".
func Key(s string) string {
	if s == "" {
		return ""
	}

	t := Spaces(s)
	t = reMoll.ReplaceAllString(t, "")
	t = reDur.ReplaceAllString(t, "")

	return strings.TrimSpace(t)
}

// PersonName turns "Given Middle Last" into "Last, Given Middle".
// Names that already contain a comma and single words are kept as they are.
func PersonName(s string) string {
	name := StripZurPerson(s)
	if name == "" {
		return ""
	}
	if strings.Contains(name, ",") {
		return name
	}

	parts := strings.Fields(name)
	if len(parts) == 1 {
		return parts[0]
	}

	last := parts[len(parts)-1]
	given := strings.Join(parts[:len(parts)-1], " ")

	return last + ", " + given
}

// LifeYears removes life dates such as "(1607–1676)", "(1623)" or a bare
// "1653" from a hymn author line.
func LifeYears(s string) string {
	if s == "" {
		return ""
	}

	s = reYearSpan.ReplaceAllString(s, "")
	s = reYearParen.ReplaceAllString(s, "")
	s = reBareYear.ReplaceAllString(s, "")
	s = reMultiWS.ReplaceAllString(s, " ")

	return strings.Trim(s, " \u00a0,;/")
}
