package libro

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	d := MustParseDate("1977-01-28")

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"1977-01-28"`, string(data))

	var got Date
	require.NoError(t, json.Unmarshal([]byte(`"1977-01-28"`), &got))
	assert.Equal(t, d, got)
}

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"日期", `"2020-01-01"`, Date{2020, time.January, 1}, false},
		{"完整时间戳", `"2020-01-01T10:00:00Z"`, Date{2020, time.January, 1}, false},
		{"null", `null`, Date{}, false},
		{"空串", `""`, Date{}, false},
		{"格式错误", `"01/01/2020"`, Date{}, true},
		{"非字符串", `20200101`, Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Date
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate_Compare(t *testing.T) {
	a := MustParseDate("2020-01-01")
	b := MustParseDate("2020-01-02")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.False(t, a.Before(a))
	assert.True(t, Date{}.IsZero())
	assert.Equal(t, "2020-01-02", b.String())
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := time.Date(2024, time.March, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, Date{2024, time.March, 1}, DateOf(ts))
}
