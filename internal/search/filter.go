package search

import (
	"strings"

	"github.com/antoinebou12/horaire-ets/internal/course"
)

// FilterByOptions restricts the candidate set before scoring. Programme
// and credit constraints compose with AND; within the programme list the
// prefixes compose with OR. A nil or zero options value returns the input
// unchanged.
func FilterByOptions(courses []course.Course, opts *Options) []course.Course {
	if opts.IsZero() || len(courses) == 0 {
		return courses
	}

	filtered := courses
	if len(opts.Programmes) > 0 {
		filtered = filterByProgrammes(filtered, opts.Programmes)
	}
	if opts.MinCredits != nil || opts.MaxCredits != nil {
		filtered = filterByCredits(filtered, opts.MinCredits, opts.MaxCredits)
	}
	return filtered
}

// filterByProgrammes keeps courses whose uppercased code starts with at
// least one of the named programme prefixes.
func filterByProgrammes(courses []course.Course, programmes []course.Programme) []course.Course {
	prefixes := make([]string, 0, len(programmes))
	for _, p := range programmes {
		if name := strings.ToUpper(strings.TrimSpace(string(p))); name != "" {
			prefixes = append(prefixes, name)
		}
	}
	if len(prefixes) == 0 {
		return courses
	}

	kept := make([]course.Course, 0, len(courses))
	for _, c := range courses {
		code := strings.ToUpper(c.Code)
		for _, prefix := range prefixes {
			if strings.HasPrefix(code, prefix) {
				kept = append(kept, c)
				break
			}
		}
	}
	return kept
}

// filterByCredits keeps courses with minCredits <= credits <= maxCredits,
// bounds optional and inclusive. Courses without a credit count fail
// whenever either bound is set.
func filterByCredits(courses []course.Course, minCredits, maxCredits *int) []course.Course {
	kept := make([]course.Course, 0, len(courses))
	for _, c := range courses {
		if c.Credits == nil {
			continue
		}
		if minCredits != nil && *c.Credits < *minCredits {
			continue
		}
		if maxCredits != nil && *c.Credits > *maxCredits {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
