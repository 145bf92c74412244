package domain

// Currency is a tradable currency identified by its ISO-style code.
type Currency struct {
	ID   int64
	Code string
	Name string
}
