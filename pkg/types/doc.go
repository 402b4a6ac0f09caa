// Package types defines the dish naming rules, the Store interface that
// backing stores implement, the backend Config, and the standard errors
// returned by the menu service.
package types
