package model

// DefaultCollectionName is seeded at startup so every library starts
// with a favorites shelf.
const DefaultCollectionName = "Favorites"

type Collection struct {
	ID   int64
	Name string
}
