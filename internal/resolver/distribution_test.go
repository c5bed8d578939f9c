package resolver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTally(t *testing.T) {
	tests := []struct {
		name     string
		in       []string
		expected Distribution
	}{
		{"empty", nil, nil},
		{"single", []string{"교통"}, Distribution{{"교통", 1}}},
		{
			name:     "descending by count",
			in:       []string{"환경", "교통", "교통", "복지", "교통", "환경"},
			expected: Distribution{{"교통", 3}, {"환경", 2}, {"복지", 1}},
		},
		{
			name:     "ties keep first-seen order",
			in:       []string{"복지", "교통", "환경", "교통", "복지", "환경"},
			expected: Distribution{{"복지", 2}, {"교통", 2}, {"환경", 2}},
		},
		{
			name:     "later larger count overtakes earlier tie",
			in:       []string{"A", "B", "B", "A", "C", "C", "C"},
			expected: Distribution{{"C", 3}, {"A", 2}, {"B", 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tally(tt.in)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, len(tt.in), got.Sum())
		})
	}
}

func TestDistribution_Top(t *testing.T) {
	_, ok := Distribution(nil).Top()
	assert.False(t, ok)

	top, ok := Tally([]string{"a", "b", "b"}).Top()
	assert.True(t, ok)
	assert.Equal(t, CategoryCount{"b", 2}, top)
}

func TestDistribution_MarshalJSON(t *testing.T) {
	d := Distribution{{"환경", 3}, {"교통", 2}, {"a\"b", 1}}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"환경":3,"교통":2,"a\"b":1}`, string(data))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, d.Map(), decoded)
}

func TestDistribution_MarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(Distribution(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
