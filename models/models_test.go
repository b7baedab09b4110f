package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidDishType(t *testing.T) {
	for _, tipo := range []string{"entrada", "fondo", "postre", "bebida"} {
		assert.True(t, IsValidDishType(tipo), tipo)
	}
	for _, tipo := range []string{"", "todos", "Fondo", "sopa"} {
		assert.False(t, IsValidDishType(tipo), tipo)
	}
}

func TestCleanIngredients(t *testing.T) {
	assert.Equal(t, []string{"Lechuga", "Pollo"}, CleanIngredients([]string{" Lechuga ", "", "   ", "Pollo"}))
	assert.NotNil(t, CleanIngredients(nil))
}

func TestOrderComputeTotal(t *testing.T) {
	o := Order{Items: []OrderItem{
		{UnitPrice: 0.1, Quantity: 3},
		{UnitPrice: 0.2, Quantity: 1},
	}}
	assert.Equal(t, 0.5, o.ComputeTotal())

	o = Order{Items: []OrderItem{
		{UnitPrice: 6500, Quantity: 2},
		{UnitPrice: 8900, Quantity: 1},
	}}
	assert.Equal(t, 21900.0, o.ComputeTotal())
	assert.Equal(t, 21900.0, o.Total)
}

func TestDishJSONUsesFrontendKeys(t *testing.T) {
	d := Dish{ID: "abc", Name: "Barros Luco", Price: 7500, Type: DishTypeMain, IsSandwich: true, Ingredients: []string{}}
	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "abc", m["_id"])
	assert.Equal(t, "Barros Luco", m["nombre"])
	assert.Equal(t, true, m["esSandwitch"])
	assert.Contains(t, m, "createdAt")
}

func TestUserPublicHidesHash(t *testing.T) {
	hash := "secret-hash"
	u := User{ID: "1", Name: "Ana", Email: "ana@example.com", PasswordHash: &hash}
	raw, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","nombre":"Ana","email":"ana@example.com"}`, string(raw))
}
