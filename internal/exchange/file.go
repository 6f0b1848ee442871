package exchange

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mithrel/mdnotes/internal/fsutil"
	"github.com/mithrel/mdnotes/pkg/api"
)

// Collection is the part of the note store an import needs.
type Collection interface {
	All() []api.Note
	Replace(ctx context.Context, notes []api.Note)
}

// Result counts what an import did.
type Result struct {
	Imported  int
	Unchanged int
}

// Import decodes r fully, then replaces the collection. On any error the
// collection is left as it was.
func Import(ctx context.Context, c Collection, r io.Reader, f Format, now time.Time) (Result, error) {
	notes, err := Decode(r, f, now)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	existing := make(map[string]string)
	for _, n := range c.All() {
		existing[n.ID] = n.Hash()
	}
	res := Result{Imported: len(notes)}
	for _, n := range notes {
		if h, ok := existing[n.ID]; ok && h == n.Hash() {
			res.Unchanged++
		}
	}
	c.Replace(ctx, notes)
	return res, nil
}

// ImportFile imports the file at path.
func ImportFile(ctx context.Context, c Collection, path string, f Format, now time.Time) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer file.Close()
	res, err := Import(ctx, c, file, f, now)
	if err != nil {
		return Result{}, fmt.Errorf("import %s: %w", path, err)
	}
	return res, nil
}

// ExportFile writes notes to path atomically.
func ExportFile(ctx context.Context, notes []api.Note, path string, f Format) error {
	return fsutil.WriteAtomicFunc(ctx, path, 0o600, func(w io.Writer) error {
		return Encode(w, notes, f)
	})
}
