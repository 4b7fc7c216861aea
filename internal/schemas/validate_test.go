package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidMatchCriteria(t *testing.T) {
	doc := []byte(`{
		"required_standards": ["EC0217"],
		"location": "CDMX",
		"education_level": "Licenciatura",
		"salary_min": 10000,
		"salary_max": 20000
	}`)

	assert.NoError(t, Validate(MatchCriteriaSchema, doc))
}

func TestValidate_EmptyCriteriaIsValid(t *testing.T) {
	assert.NoError(t, Validate(MatchCriteriaSchema, []byte(`{}`)))
}

func TestValidate_WrongTypeReported(t *testing.T) {
	doc := []byte(`{"required_standards": "EC0217"}`)

	err := Validate(MatchCriteriaSchema, doc)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "required_standards", validationErr.Errors[0].Field)
}

func TestValidate_UnknownPropertyRejected(t *testing.T) {
	doc := []byte(`{"not_a_field": true}`)

	err := Validate(MatchCriteriaSchema, doc)
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestValidate_NegativeSalaryRejected(t *testing.T) {
	doc := []byte(`{"salary_min": -1}`)

	err := Validate(MatchCriteriaSchema, doc)
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestValidate_ValidCandidateProfile(t *testing.T) {
	doc := []byte(`{
		"id": "c-1",
		"education_level": "Licenciatura",
		"objectives": "certificarme en energía solar",
		"experiences": ["instalación de paneles"],
		"certifications": [
			{"standard_code": "EC0217", "completed_modules": 3, "total_modules": 3}
		]
	}`)

	assert.NoError(t, Validate(CandidateProfileSchema, doc))
}

func TestValidate_CandidateProfileMissingID(t *testing.T) {
	err := Validate(CandidateProfileSchema, []byte(`{"education_level": "Licenciatura"}`))
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", []byte(`{}`))
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}
