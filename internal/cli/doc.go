// Package cli implements the interactive Humi shell.
//
// The shell wires the identification pipeline, the offline-first log
// service, and the local database into a small REPL:
//
//	scan      — photograph-to-journal flow (identify, review, save)
//	list      — merged journal, newest first, pending entries marked
//	rate      — set the 1-5 rating on an entry
//	notes     — set tasting notes on an entry
//	feedback  — thumbs up/down on identification accuracy
//	stats     — per-user aggregate from the remote store
//	sync      — drain the pending-sync queue on demand
//	login     — paste an access token; the session persists across runs
//	logout    — clear the persisted session, keep queued entries
//
// A background watcher also drains the queue periodically while logged in.
package cli
