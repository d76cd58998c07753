// Package environment propagates the deployment environment through
// context.Context. Handlers use it to decide how much error detail a
// response may expose; startup uses it to decide whether a bad tier table
// is fatal.
package environment
