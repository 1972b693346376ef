package models

// Product is the output of the product lookup collaborator for a barcode.
type Product struct {
	Barcode     string
	Name        string
	Brand       string
	Categories  []string
	Ingredients string
}
