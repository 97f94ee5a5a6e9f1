// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notifier delivers claim notifications outside of the request path.
//
// A [Dispatcher] accepts events through Notify, which never blocks: events
// are queued in a bounded channel and a full queue drops the event with a
// warning. The dispatcher's Run method is a background worker that hands
// queued events to a [Sender] one at a time, each bounded by the configured
// send timeout. Delivery is at most once; failures are logged and dropped.
//
// Senders:
//   - log: writes the notification to the structured log
//   - smtp: sends a plain text mail through an SMTP relay
//   - webhook: POSTs the event as JSON
package notifier
