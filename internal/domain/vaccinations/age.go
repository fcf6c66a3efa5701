package vaccinations

import (
	"strings"
	"time"
)

// EstimateBirthDate deriva una fecha de nacimiento aproximada desde un texto libre tipo "3 months".
// Orden de match: day, month, year. Sin unidad reconocible => now. Nunca falla.
func EstimateBirthDate(age string, now time.Time) time.Time {
	s := strings.ToLower(age)
	n := leadingInt(s)

	switch {
	case strings.Contains(s, "day"):
		return now.AddDate(0, 0, -n)
	case strings.Contains(s, "month"):
		return now.AddDate(0, -n, 0)
	case strings.Contains(s, "year"):
		return now.AddDate(-n, 0, 0)
	default:
		return now
	}
}

// leadingInt: espacios iniciales, signo opcional, dígitos. Sin dígitos => 0.
func leadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r")

	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n > 1_000_000 {
			// edades absurdas: no seguimos acumulando
			break
		}
	}
	if neg {
		return -n
	}
	return n
}
