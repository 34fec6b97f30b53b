package util

// AppendUnique appends each of vals to dst unless already present, keeping
// first-appearance order.
func AppendUnique(dst []string, vals ...string) []string {
	for _, v := range vals {
		if !Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

// Contains reports whether s holds v.
func Contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// IsDigits reports whether s is non-empty and all ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Deref returns *p, or "" for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
