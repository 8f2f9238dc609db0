// Package redis connects the service to Redis with startup retries and
// a health check. The entitlement decision cache sits on top of the
// client this package returns.
package redis
