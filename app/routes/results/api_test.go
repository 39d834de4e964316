package results

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidDOB(t *testing.T) {
	valid := []string{
		"15-08-2007",
		"01-01-2000",
		"29-02-2004", // leap day
	}
	for _, in := range valid {
		require.True(t, ValidDOB(in), "expected %q to be valid", in)
	}

	invalid := []string{
		"",
		"2007-08-15", // calendar-equal but wrong format
		"15/08/2007",
		"5-8-2007", // not zero-padded
		"32-01-2007",
		"29-02-2003", // not a leap year
		"15-13-2007",
		"15-08-07",
		"fifteen-aug-2007",
	}
	for _, in := range invalid {
		require.False(t, ValidDOB(in), "expected %q to be invalid", in)
	}
}

func TestDOBMatchIsExactString(t *testing.T) {
	require.True(t, dobMatches("15-08-2007", "15-08-2007"))
	require.True(t, dobMatches("15-08-2007", " 15-08-2007 "))

	// Calendar-equal dates in another form are rejected on purpose.
	require.False(t, dobMatches("15-08-2007", "2007-08-15"))
	require.False(t, dobMatches("15-08-2007", "15-8-2007"))
	require.False(t, dobMatches("", "15-08-2007"))
}
