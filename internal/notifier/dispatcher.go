// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/food-rescue/internal/config"
	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/utils"
	"github.com/MKhiriev/food-rescue/models"
)

// Dispatcher queues claim events and delivers them from a background worker.
type Dispatcher struct {
	queue       chan models.ClaimEvent
	sender      Sender
	sendTimeout time.Duration
	logger      *logger.Logger

	dropped atomic.Int64
}

// NewDispatcher builds a dispatcher with a queue of queueSize events.
// Non-positive values fall back to a queue of one and no send timeout.
func NewDispatcher(sender Sender, queueSize int, sendTimeout time.Duration, log *logger.Logger) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		queue:       make(chan models.ClaimEvent, queueSize),
		sender:      sender,
		sendTimeout: sendTimeout,
		logger:      log,
	}
}

// New builds the sender selected by cfg.Provider and wraps it in a Dispatcher.
func New(cfg config.Notifier, log *logger.Logger) (*Dispatcher, error) {
	sender, err := NewSender(cfg, log)
	if err != nil {
		return nil, err
	}

	log.Info().Str("provider", cfg.Provider).Int("queue_size", cfg.QueueSize).Msg("notifier configured")
	return NewDispatcher(sender, cfg.QueueSize, cfg.SendTimeout, log), nil
}

// Notify enqueues event and returns immediately. When the queue is full the
// event is dropped.
func (d *Dispatcher) Notify(ctx context.Context, event models.ClaimEvent) {
	if event.TraceID == "" {
		event.TraceID = utils.GetTraceIDFromContext(ctx)
	}

	select {
	case d.queue <- event:
	default:
		d.dropped.Add(1)
		logger.FromContext(ctx).Warn().
			Str("func", "*Dispatcher.Notify").
			Int64("claim_id", event.ClaimID).
			Msg("notification queue is full, event dropped")
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Run delivers queued events until ctx is cancelled. Events still queued at
// that point are discarded.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info().Msg("notification worker started")
	defer d.logger.Info().Msg("notification worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.queue:
			d.deliver(ctx, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event models.ClaimEvent) {
	log := d.logger.With().
		Str("func", "*Dispatcher.deliver").
		Int64("claim_id", event.ClaimID).
		Str("trace_id", event.TraceID).
		Logger()

	sendCtx := ctx
	if d.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, d.sendTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("panic", fmt.Sprint(r)).Msg("notification sender panicked")
		}
	}()

	if err := d.sender.Send(sendCtx, event); err != nil {
		log.Err(err).Msg("notification was not delivered")
		return
	}
	log.Debug().Msg("notification delivered")
}
