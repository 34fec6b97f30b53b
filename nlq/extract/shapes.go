package extract

import "regexp"

var (
	contractCodePattern = regexp.MustCompile(`^[a-z]{1,3}-?\d{6,10}$`)
	partCodePatterns    = []*regexp.Regexp{
		regexp.MustCompile(`^[a-z]{1,3}\d{3,8}$`),
		regexp.MustCompile(`^\d{4,8}[a-z]{1,3}$`),
		regexp.MustCompile(`^[a-z]{3,4}-\d{3,6}$`),
	}
)

// IsContractCode reports whether s looks like a prefixed contract number
func IsContractCode(s string) bool {
	return contractCodePattern.MatchString(s)
}

// IsPartCode reports whether s looks like a part number
func IsPartCode(s string) bool {
	for _, p := range partCodePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
