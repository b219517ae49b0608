package neo4jtools

import (
	"fmt"
	"regexp"
)

// Cypher cannot parameterize structural tokens, so labels and relationship
// types have to be interpolated into query text. Interpolation is confined to
// tokens matching this strict identifier pattern; property values are always
// bound as parameters, never interpolated.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentifier rejects any structural token that is not a plain
// identifier.
func ValidateIdentifier(token string) error {
	if !identifierPattern.MatchString(token) {
		return fmt.Errorf("invalid identifier %q: must match %s", token, identifierPattern.String())
	}
	return nil
}

// ValidateLabels validates every label in the list.
func ValidateLabels(labels []string) error {
	for _, label := range labels {
		if err := ValidateIdentifier(label); err != nil {
			return err
		}
	}
	return nil
}
