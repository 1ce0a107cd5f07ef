package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Available(t *testing.T) {
	product := &Product{Stock: 5, IsActive: true}

	assert.True(t, product.Available(1))
	assert.True(t, product.Available(5))
	assert.False(t, product.Available(6))
	assert.False(t, product.Available(0))
	assert.False(t, product.Available(-1))

	product.IsActive = false
	assert.False(t, product.Available(1))
}
