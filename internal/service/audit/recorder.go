// Package audit records every mutation the persistence service accepted: it is
// appended to the local journal and published as a ledger-committed event.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/platform/logger"
)

type JournalRepository interface {
	Append(ctx context.Context, entry model.JournalEntry) error
}

type LedgerCommittedSender interface {
	SendLedgerCommitted(ctx context.Context, event model.LedgerCommitted) error
}

type recorder struct {
	journal      JournalRepository
	sender       LedgerCommittedSender
	writeTimeout time.Duration
	now          func() time.Time
}

func NewRecorder(journal JournalRepository, sender LedgerCommittedSender, writeTimeout time.Duration) *recorder {
	return &recorder{
		journal:      journal,
		sender:       sender,
		writeTimeout: writeTimeout,
		now:          time.Now,
	}
}

// Record never fails the caller: the mutation is already committed remotely, so
// journal and broker failures are only logged.
func (r *recorder) Record(
	ctx context.Context,
	actor model.Actor,
	action model.Action,
	parent model.Parent,
	lines []model.Line,
) model.LedgerCommitted {
	event := model.LedgerCommitted{
		EventID:    uuid.New(),
		Parent:     parent,
		ActorID:    actor.ID,
		Role:       actor.Role,
		Action:     action,
		Total:      model.SumLines(lines),
		LineCount:  len(lines),
		OccurredAt: r.now().UTC(),
	}
	log := logger.With(
		logger.String("event_id", event.EventID.String()),
		logger.String("parent_kind", string(parent.Kind)),
		logger.Int64("parent_id", parent.ID),
		logger.String("action", string(action)),
	)

	wctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	if err := r.journal.Append(wctx, model.JournalEntryFromEvent(event)); err != nil {
		log.Error(ctx, "journal append", logger.ErrorF(err))
	}

	if err := r.sender.SendLedgerCommitted(ctx, event); err != nil {
		log.Error(ctx, "send ledger committed", logger.ErrorF(err))
	}

	return event
}
