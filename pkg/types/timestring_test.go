package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeStringValidate(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"", "9:30", "24:00", "12:60", "12-30", "noon"}
	for _, s := range invalid {
		assert.Error(t, TimeString(s).Validate(), s)
	}
}

func TestTimeStringAddMinutes(t *testing.T) {
	tests := []struct {
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{"09:00", 30, "09:30", false},
		{"09:45", 20, "10:05", false},
		{"23:00", 60, "24:00", false},
		{"23:30", 45, "", true},
		{"00:00", -1, "", true},
		{"bad", 10, "", true},
	}

	for _, tt := range tests {
		got, err := tt.start.AddMinutes(tt.minutes)
		if tt.wantErr {
			assert.Error(t, err, "%s + %d", tt.start, tt.minutes)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestTimeStringComparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:01").IsBefore("09:00"))

	// Верхняя граница "24:00" сравнивается как конец суток
	assert.True(t, TimeString("23:59").IsBefore("24:00"))
	assert.True(t, TimeString("24:00").IsAfter("23:59"))

	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:05:59")))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("11:15").Value()
	require.NoError(t, err)
	assert.Equal(t, "11:15", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("25:00").Value()
	assert.Error(t, err)
}
