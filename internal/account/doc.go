// Package account holds the simulated account flows of the dashboard: sign
// in, registration, password change and account deletion. Nothing is
// persisted; every operation only validates its input and reports the screen
// to show next.
package account
