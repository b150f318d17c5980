package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinFindingsEmpty(t *testing.T) {
	assert.Equal(t, "None", JoinFindings(nil))
	assert.Equal(t, "None", JoinFindings([]string{}))
}

func TestJoinFindingsOnlyNoneEntries(t *testing.T) {
	assert.Equal(t, "None", JoinFindings([]string{"None"}))
	assert.Equal(t, "None", JoinFindings([]string{"None", "None", "None"}))
}

func TestJoinFindingsSkipsNoneEntries(t *testing.T) {
	assert.Equal(t, "A, B", JoinFindings([]string{"A", "None", "B"}))
	assert.Equal(t, "A", JoinFindings([]string{"None", "A"}))
}

func TestJoinFindingsJoinsWithCommaSpace(t *testing.T) {
	assert.Equal(t, "A, B, C", JoinFindings([]string{"A", "B", "C"}))
	assert.Equal(t, "A", JoinFindings([]string{"A"}))
}
