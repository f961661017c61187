package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsNormalise_Defaults(t *testing.T) {
	var s Settings
	s.Normalise()

	assert.Equal(t, DefaultInboxPath, s.InboxPath)
	assert.Equal(t, DefaultProcessedPath, s.ProcessedPath)
	assert.Equal(t, DefaultErrorsPath, s.ErrorsPath)
	assert.Equal(t, DefaultLedgerPath, s.LedgerPath)
	assert.Equal(t, DefaultExtension, s.Extension)
	assert.Equal(t, int64(DefaultChunkSize), s.ChunkSize)
	assert.Equal(t, MinBatchSize, s.BatchSize)
	assert.False(t, s.ErrorsOnFailure)
}

func TestSettingsNormalise_BatchClamp(t *testing.T) {
	tests := []struct {
		name     string
		in       int
		expected int
	}{
		{name: "zero clamps to min", in: 0, expected: 1},
		{name: "negative clamps to min", in: -3, expected: 1},
		{name: "in range unchanged", in: 3, expected: 3},
		{name: "max unchanged", in: 5, expected: 5},
		{name: "above max clamps", in: 9, expected: 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Settings{BatchSize: tc.in}
			s.Normalise()
			assert.Equal(t, tc.expected, s.BatchSize)
		})
	}
}

func TestSettingsNormalise_KeepsExplicitValues(t *testing.T) {
	s := Settings{
		InboxPath: "/Drop/In",
		ChunkSize: 1024,
		Extension: ".PDF",
	}
	s.Normalise()

	assert.Equal(t, "/Drop/In", s.InboxPath)
	assert.Equal(t, int64(1024), s.ChunkSize)
	assert.Equal(t, ".PDF", s.Extension)
}
