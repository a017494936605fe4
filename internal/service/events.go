package service

import (
	"context"

	"marketplace/internal/logger"
	"marketplace/internal/models"
	"marketplace/internal/repository"
)

// recorder appends activity events best-effort: a failed append is logged and
// never fails the request that produced it.
type recorder struct {
	events repository.Events
	log    *logger.Logger
}

func (r recorder) record(ctx context.Context, typ, description string, meta any) {
	if r.events == nil {
		return
	}
	err := r.events.Append(ctx, models.Event{
		Type:        typ,
		Description: description,
		Metadata:    meta,
	})
	if err != nil && r.log != nil {
		r.log.Errorw("event_append_failed", "type", typ, "err", err)
	}
}
