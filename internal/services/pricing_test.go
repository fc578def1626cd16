package services

import (
	"testing"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestShippingCharge(t *testing.T) {
	assert.Equal(t, 3.4, shippingCharge(149.99, 3.4))
	assert.Equal(t, 0.0, shippingCharge(150.0, 3.4), "exactly at the threshold ships free")
	assert.Equal(t, 0.0, shippingCharge(500.0, 1.2))
	assert.Equal(t, 0.0, shippingCharge(10.0, 0.0))
}

func TestCanManageProduct(t *testing.T) {
	basic := &model.Customer{Roles: []string{model.RoleBasic}}
	premium := &model.Customer{Roles: []string{model.RoleBasic, model.RolePremium}}
	admin := &model.Customer{Roles: []string{model.RoleAdmin}}

	// the premium owner of a listed product may manage it
	assert.True(t, canManageProduct(premium, true, true))
	// but not someone else's listing
	assert.False(t, canManageProduct(premium, true, false))
	// and not an unlisted storefront product
	assert.False(t, canManageProduct(premium, false, false))
	// basic customers never manage products
	assert.False(t, canManageProduct(basic, true, true))
	// admins always do
	assert.True(t, canManageProduct(admin, false, false))
}

func TestCanTradeInEmporium(t *testing.T) {
	premium := &model.Customer{Roles: []string{model.RoleBasic, model.RolePremium}}
	basic := &model.Customer{Roles: []string{model.RoleBasic}}
	premiumAdmin := &model.Customer{Roles: []string{model.RolePremium, model.RoleAdmin}}

	assert.True(t, canTradeInEmporium(premium))
	assert.False(t, canTradeInEmporium(basic))
	// deliberately different from canManageProduct: admins are shut out
	assert.False(t, canTradeInEmporium(premiumAdmin))
}
