// Package model defines the data structures shared across the application
// layers. Nullable database columns map to pointer fields so that NULL and
// the zero value stay distinguishable in JSON.
package model

import "time"

// User is a registered account. Usernames are folded to lowercase before
// every comparison and insert, so the stored value is always lowercase.
//
// The password is stored and compared as an opaque string. The source system
// this backend replaces did not hash credentials and the login contract
// (exact-match comparison) is preserved; the field never serializes.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
