package lending

import "strings"

// NormalizeISBN strips separators from user input and validates the result.
// Accepted are plain digit strings of length 10 or 13; hyphens and spaces
// are tolerated anywhere since people copy them in from book covers.
func NormalizeISBN(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	if len(cleaned) != 10 && len(cleaned) != 13 {
		return "", ErrInvalidISBN
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", ErrInvalidISBN
		}
	}
	return cleaned, nil
}
