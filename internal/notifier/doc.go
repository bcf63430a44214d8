// Package notifier delivers new-event notifications to subscribers.
//
// The service matches upcoming events against stored subscriptions,
// skips pairs already in the notification log, groups the rest into one
// message per user and delivers through a Sender. A dry-run Sender
// prints instead of posting, for operating the pipeline without a bot
// token.
package notifier
