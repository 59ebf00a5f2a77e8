package store

import (
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func validPayload(name string, price float64) Payload {
	return Payload{Name: strPtr(name), Price: numPtr(price)}
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	s := New()

	first, err := s.Create(validPayload("one", 1))
	require.NoError(t, err)
	second, err := s.Create(validPayload("two", 2))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestIDsNeverReusedAfterDelete(t *testing.T) {
	s := New()

	first, err := s.Create(validPayload("one", 1))
	require.NoError(t, err)
	require.NoError(t, s.Delete(first.ID))

	second, err := s.Create(validPayload("two", 2))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID, "deleted IDs must not be reused")
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		field   string
	}{
		{"missing name", Payload{Price: numPtr(1)}, "name"},
		{"empty name", Payload{Name: strPtr(""), Price: numPtr(1)}, "name"},
		{"missing price", Payload{Name: strPtr("x")}, "price"},
		{"negative price", Payload{Name: strPtr("x"), Price: numPtr(-0.01)}, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			_, err := s.Create(tt.payload)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Zero(t, s.Count(), "failed create must not mutate the store")
		})
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	s := New()

	p := validPayload("Test Item", 29.99)
	p.Description = strPtr("a thing")
	p.Metadata = map[string]any{"color": "red"}

	created, err := s.Create(p)
	require.NoError(t, err)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.Price, got.Price)
	assert.Equal(t, created.Metadata, got.Metadata)
}

func TestGetNotFound(t *testing.T) {
	s := New()
	_, err := s.Get(42)

	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, int64(42), nfe.ID)
}

func TestListCreationOrder(t *testing.T) {
	s := New()
	for _, name := range []string{"a", "b", "c"} {
		_, err := s.Create(validPayload(name, 1))
		require.NoError(t, err)
	}

	items := s.List()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "b", items[1].Name)
	assert.Equal(t, "c", items[2].Name)
}

func TestReplaceOverwritesAllFields(t *testing.T) {
	s := New()
	p := validPayload("old", 1)
	p.Description = strPtr("old description")
	created, err := s.Create(p)
	require.NoError(t, err)

	replaced, err := s.Replace(created.ID, validPayload("new", 2))
	require.NoError(t, err)

	assert.Equal(t, created.ID, replaced.ID)
	assert.Equal(t, "new", replaced.Name)
	assert.Equal(t, 2.0, replaced.Price)
	assert.Empty(t, replaced.Description, "replace must clear fields not supplied")
	assert.Equal(t, created.CreatedAt, replaced.CreatedAt)
}

func TestReplaceNotFound(t *testing.T) {
	s := New()
	_, err := s.Replace(1, validPayload("x", 1))

	var nfe *NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestPatchPreservesOmittedFields(t *testing.T) {
	s := New()
	p := validPayload("X", 10)
	p.Description = strPtr("keep me")
	created, err := s.Create(p)
	require.NoError(t, err)

	patched, err := s.Patch(created.ID, Payload{Price: numPtr(44.99)})
	require.NoError(t, err)

	assert.Equal(t, "X", patched.Name)
	assert.Equal(t, "keep me", patched.Description)
	assert.Equal(t, 44.99, patched.Price)
}

func TestPatchValidatesPresentFields(t *testing.T) {
	s := New()
	created, err := s.Create(validPayload("x", 1))
	require.NoError(t, err)

	_, err = s.Patch(created.ID, Payload{Price: numPtr(-1)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// The failed patch must not have touched the item.
	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Price)
}

func TestDelete(t *testing.T) {
	s := New()
	created, err := s.Create(validPayload("x", 1))
	require.NoError(t, err)

	require.NoError(t, s.Delete(created.ID))

	_, err = s.Get(created.ID)
	var nfe *NotFoundError
	assert.ErrorAs(t, err, &nfe)

	err = s.Delete(created.ID)
	assert.True(t, errors.As(err, &nfe), "second delete must report not found")
}

func TestConcurrentCreatesYieldDistinctContiguousIDs(t *testing.T) {
	const n = 100

	s := New()
	ids := make([]int64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			item, err := s.Create(validPayload("item", float64(i)))
			if err != nil {
				t.Error(err)
				return
			}
			ids[i] = item.ID
		}(i)
	}
	wg.Wait()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		require.Equal(t, int64(i+1), id, "ids must be distinct with no gaps")
	}
}

func TestReturnedItemsAreCopies(t *testing.T) {
	s := New()
	p := validPayload("x", 1)
	p.Metadata = map[string]any{"k": "v"}
	created, err := s.Create(p)
	require.NoError(t, err)

	// Mutating the returned item must not affect stored state.
	created.Name = "mutated"
	created.Metadata["k"] = "mutated"

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name)
	assert.Equal(t, "v", got.Metadata["k"])
}

func TestStoreDoesNotRetainCallerMetadata(t *testing.T) {
	s := New()
	p := validPayload("x", 1)
	meta := map[string]any{"k": "v"}
	p.Metadata = meta
	created, err := s.Create(p)
	require.NoError(t, err)

	// Mutating the caller's map after the call must not affect stored state.
	meta["k"] = "mutated"

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "v", got.Metadata["k"])

	patchMeta := map[string]any{"k": "patched"}
	_, err = s.Patch(created.ID, Payload{Metadata: patchMeta})
	require.NoError(t, err)
	patchMeta["k"] = "mutated"

	got, err = s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "patched", got.Metadata["k"])
}
