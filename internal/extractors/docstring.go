package extractors

import "regexp"

var quotedName = regexp.MustCompile(`["']([^"']+)["']`)

// AllNames returns the quoted names in the value of an __all__ assignment.
func AllNames(value string) []string {
	var names []string
	for _, m := range quotedName.FindAllStringSubmatch(value, -1) {
		names = append(names, m[1])
	}
	return names
}
