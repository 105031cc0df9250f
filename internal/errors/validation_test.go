package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studyquest/progression/internal/errors"
)

func TestValidationBuilderEmpty(t *testing.T) {
	vb := errors.NewValidationBuilder()
	assert.NoError(t, vb.Build())
}

func TestValidationBuilderRequiredFields(t *testing.T) {
	err := errors.NewValidationBuilder().
		RequiredField("LedgerRepo").
		RequiredField("Clock").
		Build()

	assert.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "Clock: is required")
	assert.Contains(t, err.Error(), "LedgerRepo: is required")
}

func TestValidationBuilderInvalidField(t *testing.T) {
	err := errors.NewValidationBuilder().
		InvalidField("Amount", "must be >= 0").
		Build()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Amount: is invalid: must be >= 0")

	meta := errors.GetMeta(err)
	assert.NotNil(t, meta["validation_errors"])
}

func TestValidationBuilderAccumulatesPerField(t *testing.T) {
	err := errors.NewValidationBuilder().
		Field("ZoneID", "is required").
		Fieldf("ZoneID", "must contain a %q separator", "-").
		Build()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), `ZoneID: is required, must contain a "-" separator`)
}
