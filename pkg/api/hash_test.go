package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNote_Hash(t *testing.T) {
	now := time.Now().UTC()

	base := Note{
		ID:        "test-id",
		Title:     "My Note",
		Content:   "Hello world",
		Pinned:    true,
		UpdatedAt: now,
	}

	t.Run("identical notes produce identical hashes", func(t *testing.T) {
		n1 := base
		n2 := base
		assert.Equal(t, n1.Hash(), n2.Hash())
	})

	t.Run("different content produces different hashes", func(t *testing.T) {
		n2 := base
		n2.Title = "Different Title"

		n3 := base
		n3.Content = "Different body"

		n4 := base
		n4.Pinned = false

		assert.NotEqual(t, base.Hash(), n2.Hash())
		assert.NotEqual(t, base.Hash(), n3.Hash())
		assert.NotEqual(t, base.Hash(), n4.Hash())
	})

	t.Run("field boundaries matter", func(t *testing.T) {
		n1 := base
		n1.Title, n1.Content = "ab", "c"
		n2 := base
		n2.Title, n2.Content = "a", "bc"
		assert.NotEqual(t, n1.Hash(), n2.Hash())
	})

	t.Run("timezone independence", func(t *testing.T) {
		n1 := base
		n1.UpdatedAt = now.In(time.FixedZone("EST", -5*3600))
		assert.Equal(t, base.Hash(), n1.Hash(), "Hash should be independent of timezone for the same instant")
	})

	t.Run("sub-millisecond precision is ignored", func(t *testing.T) {
		n1 := base
		n1.UpdatedAt = time.UnixMilli(1700000000123).Add(500 * time.Microsecond)
		n2 := base
		n2.UpdatedAt = time.UnixMilli(1700000000123)
		assert.Equal(t, n1.Hash(), n2.Hash())
	})
}
