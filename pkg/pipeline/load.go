package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/rclayout/pkg/errors"
	"github.com/matzehuels/rclayout/pkg/form"
	"github.com/matzehuels/rclayout/pkg/observability"
)

// Load reads a forms document from path.
func Load(ctx context.Context, path string) (*form.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	doc, err := form.ReadFile(path)
	count := 0
	if doc != nil {
		count = len(doc.Forms)
	}
	hooks.OnLoadComplete(ctx, path, count, time.Since(start), err)
	return doc, err
}

// selectForms returns the forms opts asks for, in document order. Every
// requested id must exist.
func selectForms(doc *form.Document, opts Options) ([]form.Form, error) {
	for _, id := range opts.Forms {
		if _, err := doc.Find(id); err != nil {
			return nil, err
		}
	}
	var out []form.Form
	for _, f := range doc.Forms {
		if opts.Selected(f.ID) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document has no forms")
	}
	return out, nil
}
