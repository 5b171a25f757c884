package paginate

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromQuery(t *testing.T) {
	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Limit: 10}},
		{"page=2&limit=10", Params{Page: 2, Limit: 10}},
		{"page=0&limit=0", Params{Page: 1, Limit: 1}},
		{"page=-4&limit=-1", Params{Page: 1, Limit: 1}},
		{"page=abc&limit=xyz", Params{Page: 1, Limit: 10}},
		{"limit=500", Params{Page: 1, Limit: 50}},
		{"page=3.0&limit=7.9", Params{Page: 3, Limit: 7}},
		{"page=NaN", Params{Page: 1, Limit: 10}},
		{"page=9223372036854775807&limit=10", Params{Page: MaxPage, Limit: 10}},
		{"page=99999999999999999999&limit=50", Params{Page: MaxPage, Limit: 50}},
		{"page=-99999999999999999999", Params{Page: 1, Limit: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FromQuery(q))
		})
	}
}

func TestSkip(t *testing.T) {
	assert.Equal(t, int64(0), Params{Page: 1, Limit: 10}.Skip())
	assert.Equal(t, int64(10), Params{Page: 2, Limit: 10}.Skip())
	assert.Equal(t, int64(98), Params{Page: 3, Limit: 49}.Skip())

	q := url.Values{"page": {"9223372036854775807"}, "limit": {"50"}}
	assert.Positive(t, FromQuery(q).Skip(), "a huge page must not wrap to a negative skip")
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(1), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
	assert.Equal(t, int64(3), TotalPages(25, 10))
	assert.Equal(t, int64(25), TotalPages(25, 1))
}

func TestNewPage_EncodesEmptyData(t *testing.T) {
	b, err := json.Marshal(NewPage[string](nil, Params{Page: 4, Limit: 10}, 25))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"page":4,"limit":10,"total":25,"totalPages":3}`, string(b))
}

func TestWindow(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, Window(s, 0, 2))
	assert.Equal(t, []int{5}, Window(s, 4, 2))
	assert.Equal(t, []int{}, Window(s, 6, 2))
	assert.Equal(t, []int{}, Window(s, Params{Page: MaxPage, Limit: 10}.Skip(), 10))
	assert.Equal(t, []int{2, 3, 4, 5}, Window(s, 1, 0))
	assert.Equal(t, []int{1}, Window(s, -3, 1))
}
