// Package collections names the collections (MongoDB) and tables (PostgreSQL)
// shared by the user and photo repositories.
package collections

const (
	Users  = "users"
	Photos = "photos"
)
