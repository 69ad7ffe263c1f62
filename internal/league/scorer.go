package league

import (
	"regexp"
	"strconv"
	"strings"
)

var annotationRe = regexp.MustCompile(`^(.+?)\s*\(\s*([0-9]+|[A-Za-z]+)\s*\)$`)

// splitAnnotation separates "Name (X)" into its name and suffix. Strings
// without a parenthesised suffix return the trimmed string and "".
func splitAnnotation(s string) (name, suffix string) {
	s = strings.TrimSpace(s)
	m := annotationRe.FindStringSubmatch(s)
	if m == nil {
		return s, ""
	}
	return strings.TrimSpace(m[1]), m[2]
}

// ParseScorer parses a scorer string of the form "Name" or "Name (N)".
// It never fails: a missing or non-numeric suffix counts as one goal.
func ParseScorer(s string) (name string, goals int) {
	name, suffix := splitAnnotation(s)
	if suffix == "" {
		return name, 1
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		// not a count, keep the whole annotation as the name
		return strings.TrimSpace(s), 1
	}
	return name, n
}

// ParseCard parses a card annotation: "Name" or "Name (Y)" is one yellow,
// "Name (N)" is N yellows and "Name (R)" is one red.
func ParseCard(s string) (name string, yellow, red int) {
	name, suffix := splitAnnotation(s)
	switch strings.ToLower(suffix) {
	case "":
		return name, 1, 0
	case "y", "yellow":
		return name, 1, 0
	case "r", "red":
		return name, 0, 1
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return strings.TrimSpace(s), 1, 0
	}
	return name, n, 0
}
