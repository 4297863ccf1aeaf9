package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_KeepsOrder(t *testing.T) {
	t.Parallel()

	table := NewTable(newMockLineRule("b"), newMockDocRule("a"), newMockLineRule("c"))
	assert.Equal(t, []string{"b", "a", "c"}, table.Names())
	assert.Equal(t, 3, table.Len())

	got, ok := table.Get("a")
	require.True(t, ok)
	assert.Equal(t, ScopeDocument, got.Scope())

	_, ok = table.Get("missing")
	assert.False(t, ok)
}

func TestNewTable_PanicsOnDuplicate(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewTable(newMockLineRule("x"), newMockLineRule("x"))
	})
}

func TestNewTable_PanicsOnScopeMismatch(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewTable(&halfRule{BaseRule: NewBaseRule("half", "", ScopeLine, false)})
	})
}

func TestScope_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "line", ScopeLine.String())
	assert.Equal(t, "document", ScopeDocument.String())
}

func TestTable_Infos(t *testing.T) {
	t.Parallel()

	table := NewTable(newMockLineRule("a"), newMockLineRule("b"))
	infos := table.Infos()

	assert.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, "line", infos[1].Scope)
}
