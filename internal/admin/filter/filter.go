// Package filter evaluates the free-text filter string accepted by every
// list endpoint. A filter either requests a boolean field by keyword
// ("enabled", "+", ...) or degrades to a plain substring match over the
// entity's text fields; the registries combine both with OR.
package filter

import "strings"

// Keyword reports whether the raw filter requests a boolean field. The
// field is requested when the filter contains one of the partial keywords
// (case-insensitive) or equals one of the exact keywords exactly.
func Keyword(raw string, partial, exact []string) bool {
	upper := strings.ToUpper(raw)
	for _, kw := range partial {
		if strings.Contains(upper, strings.ToUpper(kw)) {
			return true
		}
	}
	for _, kw := range exact {
		if upper == strings.ToUpper(kw) {
			return true
		}
	}
	return false
}

// Enabled reports whether the filter asks for enabled rows.
func Enabled(raw string) bool {
	return Keyword(raw, []string{"enabled"}, []string{"+", "true"})
}

// Disabled reports whether the filter asks for disabled rows.
// Note "disabled" contains "abled" but not "enabled", so the two keywords
// never shadow each other.
func Disabled(raw string) bool {
	return Keyword(raw, []string{"disabled"}, []string{"-", "false"})
}

// Confirmed reports whether the filter asks for confirmed user accounts.
func Confirmed(raw string) bool {
	return Keyword(raw, []string{"confirmed"}, []string{"+", "true"})
}

// Admin reports whether the filter asks for administrator accounts. The
// "+"/"true" shorthands select admins and confirmed accounts alike.
func Admin(raw string) bool {
	return Keyword(raw, []string{"admin"}, []string{"+", "true"})
}

// MatchesAny reports whether any of the values contains the filter as a
// substring. The substring test is case-sensitive, matching how the
// registries have always filtered free text.
func MatchesAny(raw string, values ...string) bool {
	for _, v := range values {
		if strings.Contains(v, raw) {
			return true
		}
	}
	return false
}
