package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	mean, ok := Mean([]int{8, 10})
	assert.True(t, ok)
	assert.Equal(t, 9.0, mean)

	_, ok = Mean(nil)
	assert.False(t, ok)
}

func TestFromScores(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   *int
	}{
		{"no reviews means no rating", nil, nil},
		{"single score", []int{7}, intPtr(7)},
		{"exact mean", []int{8, 10}, intPtr(9)},
		{"half rounds up", []int{8, 9}, intPtr(9)},
		{"below half rounds down", []int{1, 1, 2}, intPtr(1)},
		{"all max", []int{10, 10, 10}, intPtr(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromScores(tt.scores)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromAverage(t *testing.T) {
	assert.Nil(t, FromAverage(nil))

	avg := 8.5
	got := FromAverage(&avg)
	assert.Equal(t, intPtr(9), got)

	avg = 8.49
	assert.Equal(t, intPtr(8), FromAverage(&avg))
}

func intPtr(v int) *int {
	return &v
}
