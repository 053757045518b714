// Package domain contains the core entities of the practice tracker:
// users, catalog problems, per-user review schedule states, and curated
// problem lists. Entities are plain values with their own validation;
// all state transitions live in the schedule and listops packages and
// return new values instead of mutating in place.
package domain
