package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcleod/topsecret/storage/memory"
)

type staticRepo struct {
	names []string
	err   error
}

func (r staticRepo) List() ([]string, error)     { return r.names, r.err }
func (r staticRepo) Read(string) (string, error) { return "", nil }

func TestCatalog_List(t *testing.T) {
	repo := memory.NewRepository()
	require.NoError(t, repo.Put("fileb.txt", "b"))
	require.NoError(t, repo.Put("filea.txt", "a"))
	require.NoError(t, repo.Put("File0.txt", "0"))

	l, err := New(repo).List()
	require.NoError(t, err)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"File0.txt", "filea.txt", "fileb.txt"}, l.Names())
	assert.Equal(t, []Entry{
		{Index: 1, Name: "File0.txt"},
		{Index: 2, Name: "filea.txt"},
		{Index: 3, Name: "fileb.txt"},
	}, l.Entries())
}

func TestCatalog_Deterministic(t *testing.T) {
	repo := staticRepo{names: []string{"c.txt", "a.txt", "b.txt"}}
	c := New(repo)

	first, err := c.List()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := c.List()
		require.NoError(t, err)
		assert.Equal(t, first.Entries(), again.Entries())
	}

	shuffled, err := New(staticRepo{names: []string{"b.txt", "c.txt", "a.txt"}}).List()
	require.NoError(t, err)
	assert.Equal(t, first.Entries(), shuffled.Entries())
}

func TestCatalog_FiltersAndDeduplicates(t *testing.T) {
	repo := staticRepo{names: []string{"a.txt", "key.key", "a.txt", "b.md"}}

	l, err := New(repo).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, l.Names())

	l, err = New(repo, WithExtension(".md")).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.md"}, l.Names())
}

func TestCatalog_ListError(t *testing.T) {
	_, err := New(staticRepo{err: assert.AnError}).List()
	assert.ErrorIs(t, err, assert.AnError)

	_, err = New(staticRepo{err: assert.AnError}).Resolve(1)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestListing_Resolve(t *testing.T) {
	c := New(staticRepo{names: []string{"fileb.txt", "filea.txt"}})

	l, err := c.List()
	require.NoError(t, err)

	name, err := l.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, "filea.txt", name)

	name, err = c.Resolve(2)
	require.NoError(t, err)
	assert.Equal(t, "fileb.txt", name)

	for _, idx := range []int{-1, 0, 3, 99} {
		_, err := l.Resolve(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}
}

func TestListing_Empty(t *testing.T) {
	l, err := New(memory.NewRepository()).List()
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Entries())

	_, err = l.Resolve(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestListing_NamesIsCopy(t *testing.T) {
	l, err := New(staticRepo{names: []string{"a.txt"}}).List()
	require.NoError(t, err)
	names := l.Names()
	names[0] = "mutated.txt"
	assert.Equal(t, []string{"a.txt"}, l.Names())
}
