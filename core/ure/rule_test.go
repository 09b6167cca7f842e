package ure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryPreservesRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	first := NewTransitivityRule()
	reg.Register(first)

	second := &TransitivityRule{Discount: 0.5, BridgeLimit: 1}
	reg.Register(second)

	rules := reg.Rules()
	assert.Same(t, Rule(first), rules[0])
	assert.Same(t, Rule(second), rules[1])
}

func TestRulesReturnsDefensiveCopy(t *testing.T) {
	reg := NewRegistry(NewTransitivityRule())
	rules := reg.Rules()
	rules[0] = nil
	assert.NotNil(t, reg.Rules()[0], "mutating the returned slice must not affect the registry")
}
