package node_test

import (
	"map-caster/node"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modelNames(models []node.Populator) []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name())
	}

	return names
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := node.NewRegistry()
	require.NoError(t, reg.Register(innerModel, outerModel))
	require.NoError(t, reg.Register(innerModel))

	err := reg.Register(node.NewDynamicModel("Inner", nil))
	assert.ErrorIs(t, err, node.ErrDuplicateModel)

	err = reg.Register(node.NewDynamicModel("", nil))
	assert.ErrorIs(t, err, node.ErrEmptyName)

	err = reg.Register(nil)
	assert.ErrorIs(t, err, node.ErrEmptyName)

	m, ok := reg.Lookup("Outer")
	assert.True(t, ok)
	assert.Same(t, outerModel, m)

	_, ok = reg.Lookup("Nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"Inner", "Outer"}, reg.Names())

	var empty *node.Registry
	_, ok = empty.Lookup("Inner")
	assert.False(t, ok)
	assert.Nil(t, empty.Names())
}

func TestReachable(t *testing.T) {
	t.Parallel()

	reg := node.NewRegistry()
	user := node.NewDynamicModel("User", func() node.Schema {
		return node.Schema{
			"groups":  node.ListOf(node.Ref("Group")),
			"address": node.ModelOf(addressModel),
			"missing": node.Ref("Missing"),
			"broken":  node.MapOf(node.ModelDescriptor{}),
		}
	})
	group := node.NewDynamicModel("Group", func() node.Schema {
		return node.Schema{
			"members": node.MapOf(node.TupleOf(node.Ref("User"))),
		}
	})
	require.NoError(t, reg.Register(user, group))

	assert.Equal(t, []string{"User", "Address", "Group"}, modelNames(reg.Reachable(user)))
	assert.Equal(t, []string{"Group", "User"}, modelNames(reg.Reachable(group)))

	var none *node.Registry
	assert.Equal(t, []string{"User", "Address"}, modelNames(none.Reachable(user)))
	assert.Nil(t, reg.Reachable(nil))
}
