package stats

import "time"

// Earliest возвращает самую раннюю метку в исходном виде.
// При равенстве побеждает первая встреченная.
func Earliest(dates []string) (string, bool) {
	return extremum(dates, func(candidate, best time.Time) bool {
		return candidate.Before(best)
	})
}

// Latest возвращает самую позднюю метку в исходном виде.
// При равенстве побеждает первая встреченная.
func Latest(dates []string) (string, bool) {
	return extremum(dates, func(candidate, best time.Time) bool {
		return candidate.After(best)
	})
}

// extremum линейный проход по меткам. Нераспознанная метка не может
// вытеснить распознанную; если не распознана ни одна, возвращается первая.
func extremum(dates []string, better func(candidate, best time.Time) bool) (string, bool) {
	if len(dates) == 0 {
		return "", false
	}

	best := dates[0]
	bestTime, bestOK := ParseTimestamp(best)

	for _, d := range dates[1:] {
		t, ok := ParseTimestamp(d)
		if !ok {
			continue
		}
		if !bestOK || better(t, bestTime) {
			best, bestTime, bestOK = d, t, true
		}
	}

	return best, true
}
