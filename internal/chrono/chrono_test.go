package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedTime(t *testing.T) {
	at := time.Date(2024, time.March, 5, 18, 30, 0, 0, time.UTC)
	require.Equal(t, at, FixedTime{At: at}.Now())
}

func TestStandardTimeIsLocal(t *testing.T) {
	require.Equal(t, time.Local, NewStandardTime().Now().Location())
}

func TestValidateSpec(t *testing.T) {
	require.NoError(t, ValidateSpec("0 17 * * 1-5"))
	require.NoError(t, ValidateSpec("@daily"))
	require.Error(t, ValidateSpec("every day"))
	require.Error(t, ValidateSpec("* * *"))
}
