// Package view holds the presentational state of storefront page regions:
// remotely loaded lists and records, and the values derived from them for
// rendering.
package view

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

// List is a remotely loaded list. Fetch errors are logged and leave the
// list empty; the page then shows the region's empty-state message.
type List[T any] struct {
	Items  []T
	Failed bool
	// Discarded is set when the request went away before the response
	// arrived; the late result is not applied.
	Discarded bool
}

func (l List[T]) Empty() bool {
	return len(l.Items) == 0
}

func (l List[T]) Len() int {
	return len(l.Items)
}

// LoadList runs fetch once, without retries.
func LoadList[T any](ctx context.Context, name string, fetch func(context.Context) ([]T, error)) List[T] {
	items, err := fetch(ctx)
	if ctx.Err() != nil {
		log.Debugf("Discarding %s result, request is gone", name)
		return List[T]{Items: []T{}, Discarded: true}
	}

	if err != nil {
		log.WithError(err).Errorf("Failed to load %s", name)
		return List[T]{Items: []T{}, Failed: true}
	}

	if items == nil {
		items = []T{}
	}
	return List[T]{Items: items}
}

// Filter returns a list holding the items keep accepts.
func (l List[T]) Filter(keep func(T) bool) List[T] {
	out := List[T]{Items: make([]T, 0, len(l.Items)), Failed: l.Failed, Discarded: l.Discarded}
	for _, item := range l.Items {
		if keep(item) {
			out.Items = append(out.Items, item)
		}
	}
	return out
}

// Limit keeps at most n items.
func (l List[T]) Limit(n int) List[T] {
	if n < 0 || len(l.Items) <= n {
		return l
	}
	out := l
	out.Items = l.Items[:n]
	return out
}

// Detail is a remotely loaded single record.
type Detail[T any] struct {
	Item      *T
	Err       error
	Discarded bool
}

func (d Detail[T]) Found() bool {
	return d.Item != nil
}

// NotFound reports whether the record is missing for a reason other than
// a transport or status failure the user could retry.
func (d Detail[T]) NotFound(notFound error) bool {
	return d.Item == nil && (d.Err == nil || errors.Is(d.Err, notFound))
}

// LoadDetail runs fetch once, without retries.
func LoadDetail[T any](ctx context.Context, name string, fetch func(context.Context) (*T, error)) Detail[T] {
	item, err := fetch(ctx)
	if ctx.Err() != nil {
		log.Debugf("Discarding %s result, request is gone", name)
		return Detail[T]{Discarded: true}
	}

	if err != nil {
		log.WithError(err).Errorf("Failed to load %s", name)
		return Detail[T]{Err: err}
	}
	return Detail[T]{Item: item}
}
