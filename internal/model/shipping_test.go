package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingCost(t *testing.T) {
	cost, ok := ShippingCost(ShippingPersonalPickup)
	assert.True(t, ok)
	assert.Equal(t, 0.0, cost)

	cost, ok = ShippingCost(ShippingShire)
	assert.True(t, ok)
	assert.Equal(t, 1.2, cost)

	cost, ok = ShippingCost(ShippingEagleExpress)
	assert.True(t, ok)
	assert.Equal(t, 3.4, cost)

	cost, ok = ShippingCost(ShippingNazgulHaulers)
	assert.True(t, ok)
	assert.Equal(t, 3.4, cost)

	_, ok = ShippingCost("MORIA_MINECART")
	assert.False(t, ok)
}

func TestCustomerRoleHelpers(t *testing.T) {
	c := &Customer{Roles: []string{RoleBasic, RolePremium}}
	assert.True(t, c.IsPremium())
	assert.False(t, c.IsAdmin())
	assert.True(t, c.HasRole(RoleBasic))
	assert.False(t, c.HasRole("ringbearer"))
}

func TestValidCustomerType(t *testing.T) {
	for _, valid := range []string{CustomerTypeHobbit, CustomerTypeElf, CustomerTypeDwarf, CustomerTypeMan, CustomerTypeWizard} {
		assert.True(t, ValidCustomerType(valid), valid)
	}
	assert.False(t, ValidCustomerType("ORC"))
	assert.False(t, ValidCustomerType(""))
}
