package mutation

import (
	"context"
	"errors"

	"tasktrack/internal/listview"
	"tasktrack/internal/log"
)

// deleteWithRepair runs del and reloads list. When the deleted row was the
// only one on a page past the first, the list steps back a page. The size
// is taken before the delete, so two deletes racing on one page can leave
// the list a page off.
func deleteWithRepair[T any](ctx context.Context, list *listview.Model[T], logger log.Logger, del func() error) error {
	if list == nil {
		return del()
	}

	before := len(list.Page().Content)
	q := list.Query()

	if err := del(); err != nil {
		return err
	}

	if before <= 1 && q.Page > 0 {
		q = q.WithPage(q.Page - 1)
	}
	reload(ctx, list, logger, q)
	return nil
}

// reload loads q after a successful mutation. Its error is recorded on the
// list; the mutation itself already succeeded.
func reload[T any](ctx context.Context, list *listview.Model[T], logger log.Logger, q listview.Query) {
	if list == nil {
		return
	}
	if err := list.Load(ctx, q); err != nil && !errors.Is(err, listview.ErrSuperseded) {
		logger.Warningf("could not refresh list: %v", err)
	}
}

func refresh[T any](ctx context.Context, list *listview.Model[T], logger log.Logger) {
	if list == nil {
		return
	}
	reload(ctx, list, logger, list.Query())
}
