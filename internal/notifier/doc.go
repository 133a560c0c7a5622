// Package notifier delivers event notifications to the configured
// destination.
//
// The Telegram notifier is the production sink; the dry-run notifier
// prints the same messages to stdout. Delivery order is the caller's
// responsibility, delivery failure handling is the pipeline's.
package notifier
