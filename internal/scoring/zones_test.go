package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		expected   Zone
	}{
		{name: "floor", percentage: 0, expected: ZoneDeveloping},
		{name: "just below common", percentage: 59.9, expected: ZoneDeveloping},
		{name: "common boundary inclusive", percentage: 60.0, expected: ZoneCommonPractice},
		{name: "just below leading", percentage: 79.9, expected: ZoneCommonPractice},
		{name: "leading boundary inclusive", percentage: 80.0, expected: ZoneLeadingEdge},
		{name: "ceiling", percentage: 100, expected: ZoneLeadingEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DefaultThresholds.Classify(tt.percentage))
		})
	}
}

func TestClassifyWithCustomThresholds(t *testing.T) {
	strict := Thresholds{Common: 70, Leading: 90}
	assert.Equal(t, ZoneDeveloping, strict.Classify(69.9))
	assert.Equal(t, ZoneCommonPractice, strict.Classify(80.0))
	assert.Equal(t, ZoneLeadingEdge, strict.Classify(90.0))
}

func TestZoneLabels(t *testing.T) {
	assert.Equal(t, "Developing", ZoneDeveloping.Label())
	assert.Equal(t, "Common Practice", ZoneCommonPractice.Label())
	assert.Equal(t, "Leading Edge", ZoneLeadingEdge.Label())
}
