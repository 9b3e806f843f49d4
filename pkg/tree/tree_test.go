package tree

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/planner"
	"github.com/nspcc-dev/ltree/pkg/position"
	"github.com/nspcc-dev/ltree/pkg/store"
	"github.com/nspcc-dev/ltree/pkg/store/badgerdb"
	"github.com/nspcc-dev/ltree/pkg/store/boltdb"
	"github.com/nspcc-dev/ltree/pkg/store/memory"
	"github.com/nspcc-dev/ltree/pkg/util/logger/test"
	"github.com/stretchr/testify/require"
)

var providers = []struct {
	name      string
	construct func(t *testing.T) store.Storage
}{
	{"inmemory", func(t *testing.T) store.Storage {
		return memory.New()
	}},
	{"bbolt", func(t *testing.T) store.Storage {
		s := boltdb.New(filepath.Join(t.TempDir(), "tree.db"))
		require.NoError(t, s.Open())
		require.NoError(t, s.Init())
		t.Cleanup(func() { require.NoError(t, s.Close()) })
		return s
	}},
	{"badger", func(t *testing.T) store.Storage {
		s := badgerdb.New("", badgerdb.WithInMemory(true), badgerdb.WithSyncWrites(false))
		require.NoError(t, s.Open())
		require.NoError(t, s.Init())
		t.Cleanup(func() { require.NoError(t, s.Close()) })
		return s
	}},
}

func forEachProvider(t *testing.T, opts []Option, f func(t *testing.T, tr *Tree)) {
	for i := range providers {
		t.Run(providers[i].name, func(t *testing.T) {
			s := providers[i].construct(t)
			f(t, New(s, append([]Option{WithLogger(test.NewLogger(t, false))}, opts...)...))
		})
	}
}

func named(name string) map[string]any {
	return map[string]any{"name": name}
}

func create(t *testing.T, tr *Tree, name string, req position.Request) store.Node {
	var prm CreatePrm
	prm.SetAttributes(named(name))
	prm.SetPosition(req)

	res, err := tr.Create(context.Background(), prm)
	require.NoError(t, err)
	return res.Node()
}

type entry struct {
	path string
	name string
}

// dump returns all nodes in path order.
func dump(t *testing.T, tr *Tree) []entry {
	nodes, err := tr.Select(context.Background(), store.Where())
	require.NoError(t, err)

	res := make([]entry, len(nodes))
	for i := range nodes {
		res[i] = entry{path: nodes[i].Path.String(), name: nodes[i].Attributes["name"].(string)}
	}
	return res
}

func blueprint(name string, children ...Blueprint) Blueprint {
	return Blueprint{Attributes: named(name), Children: children}
}

func bulkCreate(t *testing.T, tr *Tree, b Blueprint, req position.Request) []store.Node {
	var prm BulkCreatePrm
	prm.SetBranch(b)
	prm.SetPosition(req)

	res, err := tr.BulkCreate(context.Background(), prm)
	require.NoError(t, err)
	return res.Nodes()
}

func graftBase(t *testing.T, tr *Tree) store.Node {
	nodes := bulkCreate(t, tr, blueprint("One",
		blueprint("Graft Here", blueprint("One")),
		blueprint("Two"),
	), position.Root())
	require.Len(t, nodes, 4)
	return nodes[1]
}

func grafted() Blueprint {
	return blueprint("Grafted",
		blueprint("One", blueprint("One")),
		blueprint("Two"),
	)
}

func TestTree_Graft(t *testing.T) {
	t.Run("child of", func(t *testing.T) {
		forEachProvider(t, nil, func(t *testing.T, tr *Tree) {
			graftHere := graftBase(t, tr)
			bulkCreate(t, tr, grafted(), position.ChildOf(graftHere))

			require.Equal(t, []entry{
				{"0000", "One"},
				{"0000.0000", "Graft Here"},
				{"0000.0000.0000", "One"},
				{"0000.0000.0001", "Grafted"},
				{"0000.0000.0001.0000", "One"},
				{"0000.0000.0001.0000.0000", "One"},
				{"0000.0000.0001.0001", "Two"},
				{"0000.0001", "Two"},
			}, dump(t, tr))
		})
	})
	t.Run("first child of", func(t *testing.T) {
		forEachProvider(t, nil, func(t *testing.T, tr *Tree) {
			graftHere := graftBase(t, tr)

			var prm BulkCreatePrm
			prm.SetBranch(grafted())
			prm.SetPosition(position.FirstChildOf(graftHere))
			res, err := tr.BulkCreate(context.Background(), prm)
			require.NoError(t, err)
			require.Equal(t, 1, res.Relocated())

			require.Equal(t, []entry{
				{"0000", "One"},
				{"0000.0000", "Graft Here"},
				{"0000.0000.0000", "Grafted"},
				{"0000.0000.0000.0000", "One"},
				{"0000.0000.0000.0000.0000", "One"},
				{"0000.0000.0000.0001", "Two"},
				{"0000.0000.0001", "One"},
				{"0000.0001", "Two"},
			}, dump(t, tr))
		})
	})
}

// fooTree builds Foo > [Bar, Qur, Qux > [Quxy], Qux-2] with relative
// positions only.
func fooTree(t *testing.T, tr *Tree) map[string]store.Node {
	foo := create(t, tr, "Foo", position.Root())
	bar := create(t, tr, "Bar", position.ChildOf(foo))
	qux := create(t, tr, "Qux", position.RightOf(bar))
	create(t, tr, "Quxy", position.ChildOf(qux))
	create(t, tr, "Qux-2", position.RightOf(qux))
	create(t, tr, "Qur", position.LeftOf(qux))

	res := make(map[string]store.Node)
	nodes, err := tr.Select(context.Background(), store.Where())
	require.NoError(t, err)
	for i := range nodes {
		res[nodes[i].Attributes["name"].(string)] = nodes[i]
	}
	return res
}

func TestTree_Siblings(t *testing.T) {
	forEachProvider(t, nil, func(t *testing.T, tr *Tree) {
		fooTree(t, tr)

		require.Equal(t, []entry{
			{"0000", "Foo"},
			{"0000.0000", "Bar"},
			{"0000.0001", "Qur"},
			{"0000.0002", "Qux"},
			{"0000.0002.0000", "Quxy"},
			{"0000.0003", "Qux-2"},
		}, dump(t, tr))
	})
}

func TestTree_Move(t *testing.T) {
	t.Run("subtree", func(t *testing.T) {
		forEachProvider(t, nil, func(t *testing.T, tr *Tree) {
			nodes := fooTree(t, tr)

			var prm MovePrm
			prm.SetID(nodes["Qux"].ID)
			prm.SetPosition(position.FirstChildOf(nodes["Bar"]))

			res, err := tr.Move(context.Background(), prm)
			require.NoError(t, err)
			require.Equal(t, 2, res.Relocated())
			require.Equal(t, mpath.Path{"0000", "0000", "0000"}, res.Node().Path)

			require.Equal(t, []entry{
				{"0000", "Foo"},
				{"0000.0000", "Bar"},
				{"0000.0000.0000", "Qux"},
				{"0000.0000.0000.0000", "Quxy"},
				{"0000.0001", "Qur"},
				{"0000.0003", "Qux-2"},
			}, dump(t, tr))
		})
	})
	t.Run("shift siblings", func(t *testing.T) {
		forEachProvider(t, nil, func(t *testing.T, tr *Tree) {
			nodes := fooTree(t, tr)

			var prm MovePrm
			prm.SetID(nodes["Qux-2"].ID)
			prm.SetPosition(position.LeftOf(nodes["Bar"]))

			res, err := tr.Move(context.Background(), prm)
			require.NoError(t, err)
			// Bar, Qur, Qux with Quxy and Qux-2 itself.
			require.Equal(t, 5, res.Relocated())

			require.Equal(t, []entry{
				{"0000", "Foo"},
				{"0000.0000", "Qux-2"},
				{"0000.0001", "Bar"},
				{"0000.0002", "Qur"},
				{"0000.0003", "Qux"},
				{"0000.0003.0000", "Quxy"},
			}, dump(t, tr))
		})
	})
	t.Run("to root", func(t *testing.T) {
		forEachProvider(t, nil, func(t *testing.T, tr *Tree) {
			nodes := fooTree(t, tr)

			var prm MovePrm
			prm.SetID(nodes["Qux"].ID)
			prm.SetPosition(position.Root())

			res, err := tr.Move(context.Background(), prm)
			require.NoError(t, err)
			require.Equal(t, 2, res.Relocated())
			require.Equal(t, mpath.Path{"0001"}, res.Node().Path)

			quxy, err := tr.Get(context.Background(), nodes["Quxy"].ID)
			require.NoError(t, err)
			require.Equal(t, mpath.Path{"0001", "0000"}, quxy.Path)
		})
	})
	t.Run("in place", func(t *testing.T) {
		forEachProvider(t, nil, func(t *testing.T, tr *Tree) {
			nodes := fooTree(t, tr)

			var prm MovePrm
			prm.SetID(nodes["Qur"].ID)
			prm.SetPosition(position.RightOf(nodes["Bar"]))

			res, err := tr.Move(context.Background(), prm)
			require.NoError(t, err)
			require.Zero(t, res.Relocated())
			require.Equal(t, nodes["Qur"].Path, res.Node().Path)
		})
	})
	t.Run("self descendant", func(t *testing.T) {
		forEachProvider(t, nil, func(t *testing.T, tr *Tree) {
			nodes := fooTree(t, tr)
			before := dump(t, tr)

			for _, req := range []position.Request{
				position.ChildOf(nodes["Foo"]),
				position.ChildOf(nodes["Quxy"]),
				position.LeftOf(nodes["Quxy"]),
				position.FirstChildOf(nodes["Bar"]),
			} {
				var prm MovePrm
				prm.SetID(nodes["Foo"].ID)
				prm.SetPosition(req)
				_, err := tr.Move(context.Background(), prm)
				require.ErrorIs(t, err, planner.ErrSelfDescendant, req.String())
			}
			require.Equal(t, before, dump(t, tr))
		})
	})
	t.Run("errors", func(t *testing.T) {
		forEachProvider(t, nil, func(t *testing.T, tr *Tree) {
			nodes := fooTree(t, tr)

			var prm MovePrm
			prm.SetID(uuid.New())
			prm.SetPosition(position.Root())
			_, err := tr.Move(context.Background(), prm)
			require.ErrorIs(t, err, store.ErrNodeNotFound)

			prm.SetID(nodes["Bar"].ID)
			prm.SetPosition(position.Request{})
			_, err = tr.Move(context.Background(), prm)
			require.ErrorIs(t, err, position.ErrInvalidRequest)

			prm.SetPosition(position.RightOf(mpath.Path{"0000", "0009"}))
			_, err = tr.Move(context.Background(), prm)
			require.ErrorIs(t, err, ErrReferenceNotFound)
		})
	})
}

func TestTree_Create(t *testing.T) {
	forEachProvider(t, nil, func(t *testing.T, tr *Tree) {
		root := create(t, tr, "root", position.Root())
		require.Equal(t, mpath.Path{"0000"}, root.Path)

		t.Run("reserved field", func(t *testing.T) {
			var prm CreatePrm
			prm.SetPath(mpath.Path{"0005"})
			prm.SetPosition(position.Root())
			_, err := tr.Create(context.Background(), prm)
			require.ErrorIs(t, err, ErrReservedField)
		})
		t.Run("no position", func(t *testing.T) {
			_, err := tr.Create(context.Background(), CreatePrm{})
			require.ErrorIs(t, err, position.ErrInvalidRequest)
		})
		t.Run("dangling parent", func(t *testing.T) {
			var prm CreatePrm
			prm.SetPosition(position.ChildOf(mpath.Path{"0009"}))
			_, err := tr.Create(context.Background(), prm)
			require.ErrorIs(t, err, ErrParentNotFound)
		})
		t.Run("dangling sibling", func(t *testing.T) {
			var prm CreatePrm
			prm.SetPosition(position.LeftOf(mpath.Path{"0009"}))
			_, err := tr.Create(context.Background(), prm)
			require.ErrorIs(t, err, ErrReferenceNotFound)
		})
		t.Run("taken ID", func(t *testing.T) {
			var prm CreatePrm
			prm.SetID(root.ID)
			prm.SetPosition(position.Root())
			_, err := tr.Create(context.Background(), prm)
			require.ErrorIs(t, err, ErrNodeExists)
		})
		t.Run("explicit path", func(t *testing.T) {
			id := uuid.New()

			var prm CreatePrm
			prm.SetID(id)
			prm.SetAttributes(named("explicit"))
			prm.SetPath(mpath.Path{"0000", "0005"})
			res, err := tr.Create(context.Background(), prm)
			require.NoError(t, err)
			require.Equal(t, id, res.Node().ID)

			// Appended after the explicitly placed one.
			n := create(t, tr, "next", position.ChildOf(root))
			require.Equal(t, mpath.Path{"0000", "0006"}, n.Path)

			prm.SetID(uuid.New())
			_, err = tr.Create(context.Background(), prm)
			require.ErrorIs(t, err, store.ErrPathConflict)

			prm.SetPath(mpath.Path{"0009", "0000"})
			_, err = tr.Create(context.Background(), prm)
			require.ErrorIs(t, err, ErrParentNotFound)

			prm.SetPath(mpath.Path{"00"})
			_, err = tr.Create(context.Background(), prm)
			require.ErrorIs(t, err, mpath.ErrInvalidLabel)
		})
		t.Run("repeated ID in branch", func(t *testing.T) {
			id := uuid.New()

			var prm BulkCreatePrm
			prm.SetBranch(Blueprint{ID: id, Children: []Blueprint{{ID: id}}})
			prm.SetPosition(position.Root())
			_, err := tr.BulkCreate(context.Background(), prm)
			require.ErrorIs(t, err, ErrNodeExists)
		})
	})
}

func TestTree_Ordering(t *testing.T) {
	opts := []Option{WithOrdering(planner.Ordering{{Attribute: "name"}})}

	forEachProvider(t, opts, func(t *testing.T, tr *Tree) {
		root := create(t, tr, "root", position.Root())
		c := create(t, tr, "c", position.ChildOf(root))
		create(t, tr, "a", position.RightOf(c))
		create(t, tr, "b", position.FirstChildOf(root))

		bulkCreate(t, tr, blueprint("d", blueprint("z"), blueprint("y")), position.LeftOf(c))

		require.Equal(t, []entry{
			{"0000", "root"},
			{"0000.0000", "a"},
			{"0000.0001", "b"},
			{"0000.0002", "c"},
			{"0000.0003", "d"},
			{"0000.0003.0000", "y"},
			{"0000.0003.0001", "z"},
		}, dump(t, tr))
	})
}

func TestTree_Delete(t *testing.T) {
	forEachProvider(t, nil, func(t *testing.T, tr *Tree) {
		nodes := fooTree(t, tr)

		n, err := tr.Delete(context.Background(), nodes["Qur"].ID)
		require.NoError(t, err)
		require.Equal(t, 1, n)

		n, err = tr.Delete(context.Background(), nodes["Qux"].ID)
		require.NoError(t, err)
		require.Equal(t, 2, n)

		_, err = tr.Delete(context.Background(), nodes["Qux"].ID)
		require.ErrorIs(t, err, store.ErrNodeNotFound)

		n, err = tr.Compact(context.Background(), nodes["Foo"].Path)
		require.NoError(t, err)
		require.Equal(t, 1, n)

		require.Equal(t, []entry{
			{"0000", "Foo"},
			{"0000.0000", "Bar"},
			{"0000.0001", "Qux-2"},
		}, dump(t, tr))

		n, err = tr.Compact(context.Background(), nil)
		require.NoError(t, err)
		require.Zero(t, n)

		_, err = tr.Compact(context.Background(), mpath.Path{"0007"})
		require.ErrorIs(t, err, ErrParentNotFound)
	})
}

func TestTree_Read(t *testing.T) {
	forEachProvider(t, nil, func(t *testing.T, tr *Tree) {
		nodes := fooTree(t, tr)
		create(t, tr, "Baz", position.Root())

		t.Run("describe", func(t *testing.T) {
			for name, expected := range map[string]position.Request{
				"Bar":   position.LeftOf(nodes["Qur"]),
				"Qux-2": position.LastChildOf(nodes["Foo"]),
				"Quxy":  position.LastChildOf(nodes["Qux"]),
				"Foo":   position.LeftOf(mpath.Path{"0001"}),
			} {
				req, err := tr.Describe(context.Background(), nodes[name].ID)
				require.NoError(t, err)
				require.Equal(t, expected, req, name)
			}

			baz, err := tr.Select(context.Background(), store.Where(store.Equal(mpath.Path{"0001"})))
			require.NoError(t, err)
			req, err := tr.Describe(context.Background(), baz[0].ID)
			require.NoError(t, err)
			require.Equal(t, position.Root(), req)
		})
		t.Run("move candidates", func(t *testing.T) {
			res, err := tr.MoveCandidates(context.Background(), nodes["Qux"].ID)
			require.NoError(t, err)

			var names []string
			for i := range res {
				names = append(names, res[i].Attributes["name"].(string))
			}
			require.Equal(t, []string{"Foo", "Bar", "Qur", "Qux-2", "Baz"}, names)
		})
		t.Run("subtree", func(t *testing.T) {
			b, err := tr.Subtree(context.Background(), nodes["Qux"].ID)
			require.NoError(t, err)
			require.Equal(t, nodes["Qux"].ID, b.Node.ID)
			require.Len(t, b.Descendants, 1)
			require.Equal(t, nodes["Quxy"].ID, b.Descendants[0].ID)
		})
		t.Run("roots", func(t *testing.T) {
			roots, err := tr.Roots(context.Background())
			require.NoError(t, err)
			require.Len(t, roots, 2)
			require.Len(t, roots[0].Descendants, 5)
			require.Empty(t, roots[1].Descendants)

			var names []string
			for c := range roots[0].Children() {
				names = append(names, c.Node.Attributes["name"].(string))
			}
			require.Equal(t, []string{"Bar", "Qur", "Qux", "Qux-2"}, names)
		})
	})
}

type countingMetrics struct {
	durations   map[string]int
	relocations map[string]int
	errors      map[string]int
}

func (m *countingMetrics) AddMethodDuration(method string, _ time.Duration) { m.durations[method]++ }
func (m *countingMetrics) AddRelocations(method string, n int)            { m.relocations[method] += n }
func (m *countingMetrics) IncErrors(method string)                         { m.errors[method]++ }

func TestTree_Metrics(t *testing.T) {
	m := &countingMetrics{
		durations:   make(map[string]int),
		relocations: make(map[string]int),
		errors:      make(map[string]int),
	}
	tr := New(memory.New(), WithMetrics(m))

	a := create(t, tr, "a", position.Root())
	create(t, tr, "b", position.LeftOf(a))

	_, err := tr.Create(context.Background(), CreatePrm{})
	require.Error(t, err)

	require.Equal(t, 3, m.durations["Create"])
	require.Equal(t, 1, m.relocations["Create"])
	require.Equal(t, 1, m.errors["Create"])
}
