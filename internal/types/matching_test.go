package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCertificationProgress_Completed(t *testing.T) {
	assert.True(t, CertificationProgress{CompletedModules: 3, TotalModules: 3}.Completed())
	assert.False(t, CertificationProgress{CompletedModules: 2, TotalModules: 3}.Completed())
	assert.False(t, CertificationProgress{CompletedModules: 0, TotalModules: 0}.Completed(),
		"zero estimated modules never counts as completed")
}

func TestCompletedStandards(t *testing.T) {
	profile := CandidateProfile{
		Certifications: []CertificationProgress{
			{StandardCode: "EC0217", CompletedModules: 3, TotalModules: 3},
			{StandardCode: "EC0366", CompletedModules: 1, TotalModules: 3},
		},
	}

	completed := profile.CompletedStandards()
	assert.True(t, completed["EC0217"])
	assert.False(t, completed["EC0366"])
}

func TestCompletionRate(t *testing.T) {
	profile := CandidateProfile{
		Certifications: []CertificationProgress{
			{StandardCode: "EC0217", CompletedModules: 3, TotalModules: 3},
			{StandardCode: "EC0366", CompletedModules: 1, TotalModules: 5},
			{StandardCode: "EC0301", CompletedModules: 0, TotalModules: 4}, // not started, excluded
		},
	}

	// (3+1) / (3+5) = 50%
	assert.InDelta(t, 50.0, profile.CompletionRate(), 1e-9)
}

func TestCompletionRate_NoProgress(t *testing.T) {
	assert.Equal(t, 0.0, (&CandidateProfile{}).CompletionRate())
}
