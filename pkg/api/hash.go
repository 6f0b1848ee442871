package api

import (
	"encoding/hex"
	"strconv"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of the note.
// It covers ID, Title, Content, Pinned and UpdatedAt (UTC milliseconds).
func (n Note) Hash() string {
	h := blake3.New()

	h.Write([]byte(n.ID))
	h.Write([]byte{0})

	h.Write([]byte(n.Title))
	h.Write([]byte{0})

	h.Write([]byte(n.Content))
	h.Write([]byte{0})

	if n.Pinned {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	h.Write([]byte{0})

	if !n.UpdatedAt.IsZero() {
		h.Write([]byte(strconv.FormatInt(n.UpdatedAt.UnixMilli(), 10)))
	}

	return hex.EncodeToString(h.Sum(nil))
}
