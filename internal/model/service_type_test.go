package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceTypeValid(t *testing.T) {
	assert.True(t, ServiceTypePlumber.Valid())
	assert.True(t, ServiceTypeApplianceRepair.Valid())
	assert.False(t, ServiceType("DOG_WALKER").Valid())
	assert.False(t, ServiceType("plumber").Valid()) // values are uppercase
}

func TestServiceTypeAttachedValues(t *testing.T) {
	assert.Equal(t, "Plumber", ServiceTypePlumber.DisplayName())
	assert.Equal(t, "plumber", ServiceTypePlumber.SearchQuery())

	assert.Equal(t, "Roofer", ServiceTypeRoofing.DisplayName())
	assert.Equal(t, "roofing_contractor", ServiceTypeRoofing.SearchQuery())

	assert.Equal(t, "HVAC Technician", ServiceTypeHVAC.DisplayName())
	assert.Equal(t, "hvac", ServiceTypeHVAC.SearchQuery())

	// Unknown types fall back to the raw value.
	assert.Equal(t, "DOG_WALKER", ServiceType("DOG_WALKER").DisplayName())
}

func TestUserTypeValid(t *testing.T) {
	assert.True(t, UserTypeCustomer.Valid())
	assert.True(t, UserTypeTradesperson.Valid())
	assert.False(t, UserType("ADMIN").Valid())
}
