package targetgraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/bundlegraph/cli/internal/errors"
	"github.com/bundlegraph/cli/internal/identity"
)

func id(s string) identity.Identity {
	return identity.MustParse(s)
}

func ids(ss ...string) []identity.Identity {
	out := make([]identity.Identity, len(ss))
	for i, s := range ss {
		out[i] = id(s)
	}
	return out
}

func node(name string, t RuleType, deps ...string) *Node {
	return &Node{ID: id(name), Type: t, DeclaredDeps: ids(deps...)}
}

func keys(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID.Key()
	}
	return out
}

func TestGraphAdd(t *testing.T) {
	g := New()
	require.NoError(t, g.Add(node("//a:a", RuleJavaLibrary)))
	assert.Error(t, g.Add(node("//a:a", RuleJavaLibrary)))

	n, ok := g.Node(id("//a:a"))
	require.True(t, ok)
	assert.Equal(t, RuleJavaLibrary, n.Type)

	_, ok = g.Node(id("//missing:x"))
	assert.False(t, ok)
	assert.Equal(t, 1, g.Len())
}

func TestTargetsOfType(t *testing.T) {
	g := New().MustAdd(
		node("//a:aar", RuleAndroidAar),
		node("//a:res", RuleAndroidResource),
		node("//b:aar", RuleAndroidAar),
	)
	assert.Equal(t, ids("//a:aar", "//b:aar"), g.TargetsOfType(RuleAndroidAar))
}

func TestNodeDeps(t *testing.T) {
	n := &Node{
		ID:           id("//a:a"),
		DeclaredDeps: ids("//b:b", "//c:c"),
		ExtraDeps:    ids("//c:c", "//d:d"),
	}
	assert.Equal(t, []string{"//b:b", "//c:c", "//d:d"}, identityKeys(n.Deps()))
}

func identityKeys(in []identity.Identity) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = v.Key()
	}
	return out
}

func TestPostOrder(t *testing.T) {
	// top -> (left, right), left -> shared, right -> shared
	g := New().MustAdd(
		node("//top:top", RuleAndroidAar, "//left:left", "//right:right"),
		node("//left:left", RuleAndroidResource, "//shared:shared"),
		node("//right:right", RuleAndroidResource, "//shared:shared"),
		node("//shared:shared", RuleJavaLibrary),
	)

	t.Run("dependencies first, each node once", func(t *testing.T) {
		order, err := PostOrder(g, ids("//left:left", "//right:right"), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"//shared:shared", "//left:left", "//right:right"}, keys(order))
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		first, err := PostOrder(g, ids("//top:top"), nil)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := PostOrder(g, ids("//top:top"), nil)
			require.NoError(t, err)
			assert.Equal(t, keys(first), keys(again))
		}
	})

	t.Run("skip prunes subtrees", func(t *testing.T) {
		order, err := PostOrder(g, ids("//top:top"), func(i identity.Identity) bool {
			return i.Key() == "//left:left"
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"//shared:shared", "//right:right", "//top:top"}, keys(order))
	})
}

func TestPostOrderErrors(t *testing.T) {
	t.Run("dangling dependency", func(t *testing.T) {
		g := New().MustAdd(node("//a:a", RuleAndroidResource, "//gone:gone"))
		_, err := PostOrder(g, ids("//a:a"), nil)
		require.Error(t, err)

		var gce *GraphConsistencyError
		require.True(t, errors.As(err, &gce))
		assert.Equal(t, "//a:a", gce.Node.Key())
		assert.True(t, errors.Is(err, oerrors.ErrGraphConsistency))
	})

	t.Run("undeclared root", func(t *testing.T) {
		_, err := PostOrder(New(), ids("//a:a"), nil)
		assert.True(t, errors.Is(err, oerrors.ErrGraphConsistency))
	})

	t.Run("cycle", func(t *testing.T) {
		g := New().MustAdd(
			node("//a:a", RuleJavaLibrary, "//b:b"),
			node("//b:b", RuleJavaLibrary, "//a:a"),
		)
		_, err := PostOrder(g, ids("//a:a"), nil)

		var cycle *CycleError
		require.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"//a:a", "//b:b", "//a:a"}, cycle.Cycle)
		assert.True(t, errors.Is(err, oerrors.ErrGraphConsistency))
	})
}

func TestTopologicalOrder(t *testing.T) {
	g := New().MustAdd(
		node("//app:aar", RuleAndroidAar, "//lib:res", "//lib:java"),
		node("//lib:res", RuleAndroidResource),
		node("//lib:java", RuleJavaLibrary, "//lib:res"),
	)

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"//lib:res", "//lib:java", "//app:aar"}, identityKeys(order))

	t.Run("cycle", func(t *testing.T) {
		g := New().MustAdd(
			node("//a:a", RuleJavaLibrary, "//b:b"),
			node("//b:b", RuleJavaLibrary, "//a:a"),
			node("//c:c", RuleJavaLibrary),
		)
		_, err := g.TopologicalOrder()
		var cycle *CycleError
		require.True(t, errors.As(err, &cycle))
		assert.ElementsMatch(t, []string{"//a:a", "//b:b"}, cycle.Cycle)
	})

	t.Run("dangling", func(t *testing.T) {
		g := New().MustAdd(node("//a:a", RuleJavaLibrary, "//nope:nope"))
		_, err := g.TopologicalOrder()
		assert.True(t, errors.Is(err, oerrors.ErrGraphConsistency))
	})
}
