package neo4jtools

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateIdentifier(t *testing.T) {
	valid := []string{"Person", "KNOWS", "_private", "snake_case", "Label2"}
	for _, token := range valid {
		require.NoError(t, ValidateIdentifier(token), "expected %q to be valid", token)
	}

	invalid := []string{
		"",
		"2starts_with_digit",
		"has space",
		"has-dash",
		"Person) DETACH DELETE (n",
		"`backtick`",
		"semi;colon",
	}
	for _, token := range invalid {
		require.Error(t, ValidateIdentifier(token), "expected %q to be rejected", token)
	}
}

func TestValidateLabels(t *testing.T) {
	require.NoError(t, ValidateLabels([]string{"Person", "Employee"}))

	err := ValidateLabels([]string{"Person", "bad label"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad label")
}
