package domain

// Category is the log source a transaction record was observed on.
type Category string

const (
	CategoryPubsub Category = "pubsub"
	CategoryShreds Category = "shreds"
)

// String returns the string representation of Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is a valid value.
func (c Category) IsValid() bool {
	return c == CategoryPubsub || c == CategoryShreds
}

// Label returns the capitalized name used in human-readable reports.
func (c Category) Label() string {
	switch c {
	case CategoryPubsub:
		return "Pubsub"
	case CategoryShreds:
		return "Shreds"
	default:
		return string(c)
	}
}
