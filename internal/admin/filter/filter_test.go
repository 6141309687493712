package filter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnabled(t *testing.T) {
	t.Parallel()

	require.True(t, Enabled("enabled"))
	require.True(t, Enabled("ENABLED"))
	require.True(t, Enabled("show enabled rows"))
	require.True(t, Enabled("+"))
	require.True(t, Enabled("true"))
	require.True(t, Enabled("TRUE"))

	require.False(t, Enabled(""))
	require.False(t, Enabled("disabled"))
	require.False(t, Enabled("-"))
	require.False(t, Enabled("truthy")) // exact keywords must match exactly
}

func TestDisabled(t *testing.T) {
	t.Parallel()

	require.True(t, Disabled("disabled"))
	require.True(t, Disabled("Disabled clients"))
	require.True(t, Disabled("-"))
	require.True(t, Disabled("false"))

	require.False(t, Disabled(""))
	require.False(t, Disabled("enabled"))
	require.False(t, Disabled("+"))
}

func TestConfirmed(t *testing.T) {
	t.Parallel()

	require.True(t, Confirmed("confirmed"))
	require.True(t, Confirmed("unconfirmed")) // partial is a contains test
	require.True(t, Confirmed("+"))
	require.True(t, Confirmed("true"))

	require.False(t, Confirmed(""))
	require.False(t, Confirmed("-"))
}

func TestAdmin(t *testing.T) {
	t.Parallel()

	require.True(t, Admin("admin"))
	require.True(t, Admin("Administrators"))
	require.True(t, Admin("+")) // shared shorthand with Confirmed
	require.True(t, Admin("true"))

	require.False(t, Admin(""))
	require.False(t, Admin("-"))
}

func TestKeywordCustomFields(t *testing.T) {
	t.Parallel()

	partial := []string{"confirmed"}
	exact := []string{"+", "true"}

	require.True(t, Keyword("confirmed", partial, exact))
	require.True(t, Keyword("unCONFIRMED", partial, exact)) // partial is a contains test
	require.True(t, Keyword("+", partial, exact))
	require.False(t, Keyword("++", partial, exact))
	require.False(t, Keyword("con", partial, exact))
}

func TestMatchesAny(t *testing.T) {
	t.Parallel()

	require.True(t, MatchesAny("cat", "catApi", "other"))
	require.True(t, MatchesAny("", "anything"))
	require.False(t, MatchesAny("Cat", "catApi")) // substring test is case-sensitive
	require.False(t, MatchesAny("cat"))
}
