// Package menu implements the menu service: the single owner of the dish
// list. It enforces the naming and uniqueness rules, persists every
// successful mutation to a types.Store, runs rename as a remove-then-add
// saga with a compensation step, and draws uniform random samples.
//
// Mutations are serialized by one lock. Rename takes the lock once per
// step, so another writer can observe the menu between the remove and the
// add. Callers that receive a rename error should re-read the menu.
package menu
