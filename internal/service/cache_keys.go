package service

import "strconv"

// Cache keys are the operation name plus its parameters
const (
	// KeyHome is the cache key for the home page
	KeyHome = "home"

	// PrefixFeed is the prefix for feed page caches (feed:{page})
	PrefixFeed = "feed:"
)

// HomeKey returns the cache key for the home page
func HomeKey() string {
	return KeyHome
}

// FeedKey returns the cache key for a feed page
func FeedKey(page int) string {
	return PrefixFeed + strconv.Itoa(page)
}
