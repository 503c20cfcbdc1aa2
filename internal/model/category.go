package model

// Category is one entry of the ledger's category catalog.
type Category struct {
	ID    int
	Name  string
	Icon  string
	Color string
}
