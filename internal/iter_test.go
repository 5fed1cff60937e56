package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := maps.All(map[string]int{"a": 1})

	merged := map[string]int{}
	for key, value := range IterSeq2Concat(a, maps.All(map[string]int{"b": 2, "c": 3})) {
		merged[key] = value
	}
	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, merged)

	var indexes []int
	for index := range IterSeq2Concat(slices.All([]int{10, 20}), slices.All([]int{30})) {
		indexes = append(indexes, index)
		if len(indexes) == 2 {
			break
		}
	}
	assert.Equal([]int{0, 1}, indexes)
}
