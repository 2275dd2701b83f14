package parcel

import "strings"

// deliveredSynonyms are the courier status strings treated as a final
// delivered state. The courier reports free text in French and English
// depending on the hub, so the set covers both.
func deliveredSynonyms() map[string]struct{} {
	return map[string]struct{}{
		"delivered":  {},
		"livré":      {},
		"remis":      {},
		"complete":   {},
		"completed":  {},
		"success":    {},
		"successful": {},
	}
}

// NormalizeStatus lowercases and trims a courier status string so stored
// statuses compare case-insensitively against polled ones.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsDeliveredStatus reports whether a courier status string, after
// normalization, is in the delivered-synonym set. Statuses outside the set
// (e.g. "returned", "lost") are recorded in the history but trigger no order
// transition.
func IsDeliveredStatus(s string) bool {
	_, ok := deliveredSynonyms()[NormalizeStatus(s)]
	return ok
}
