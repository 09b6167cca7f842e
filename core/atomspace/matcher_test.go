package atomspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherBindsVariable(t *testing.T) {
	as := New(nil)
	dog, _ := as.AddNode(ConceptNode, "dog", nil)
	mammal, _ := as.AddNode(ConceptNode, "mammal", nil)
	cat, _ := as.AddNode(ConceptNode, "cat", nil)

	_, err := as.AddLink(InheritanceLink, []Handle{dog.Handle, mammal.Handle}, nil)
	require.NoError(t, err)
	_, err = as.AddLink(InheritanceLink, []Handle{cat.Handle, mammal.Handle}, nil)
	require.NoError(t, err)

	v, _ := as.AddNode(VariableNode, "$X", nil)
	pattern := Atom{Kind: KindLink, Type: InheritanceLink, Outgoing: []Handle{v.Handle, mammal.Handle}}

	matcher := NewMatcher(as)
	var bound []Handle
	for binding := range matcher.Match(pattern) {
		bound = append(bound, binding[v.Handle])
	}

	assert.ElementsMatch(t, []Handle{dog.Handle, cat.Handle}, bound)
}

func TestMatcherSameVariableMustBindConsistently(t *testing.T) {
	as := New(nil)
	dog, _ := as.AddNode(ConceptNode, "dog", nil)
	cat, _ := as.AddNode(ConceptNode, "cat", nil)

	_, err := as.AddLink(SimilarityLink, []Handle{dog.Handle, dog.Handle}, nil)
	require.NoError(t, err)
	_, err = as.AddLink(SimilarityLink, []Handle{dog.Handle, cat.Handle}, nil)
	require.NoError(t, err)

	v, _ := as.AddNode(VariableNode, "$X", nil)
	pattern := Atom{Kind: KindLink, Type: SimilarityLink, Outgoing: []Handle{v.Handle, v.Handle}}

	matcher := NewMatcher(as)
	var matches int
	for range matcher.Match(pattern) {
		matches++
	}

	assert.Equal(t, 1, matches, "only the reflexive SimilarityLink(dog,dog) should satisfy $X~$X")
}

func TestMatcherStopsOnFalseYield(t *testing.T) {
	as := New(nil)
	for _, name := range []string{"a", "b", "c"} {
		as.AddNode(ConceptNode, name, nil)
	}

	matcher := NewMatcher(as)
	v, _ := as.AddNode(VariableNode, "$X", nil)
	_ = v

	count := 0
	for range matcher.Match(Atom{Kind: KindNode, Type: ConceptNode, Name: "a"}) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestSubstituteResolvesGroundAtom(t *testing.T) {
	as := New(nil)
	dog, _ := as.AddNode(ConceptNode, "dog", nil)
	mammal, _ := as.AddNode(ConceptNode, "mammal", nil)
	link, err := as.AddLink(InheritanceLink, []Handle{dog.Handle, mammal.Handle}, nil)
	require.NoError(t, err)

	v, _ := as.AddNode(VariableNode, "$X", nil)
	pattern := Atom{Kind: KindLink, Type: InheritanceLink, Outgoing: []Handle{v.Handle, mammal.Handle}}

	matcher := NewMatcher(as)
	binding := VariableBinding{v.Handle: dog.Handle}
	h, ok := matcher.Substitute(pattern, binding)
	require.True(t, ok)
	assert.Equal(t, link.Handle, h)
}
