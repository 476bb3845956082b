package domain

// StoreInfo is the storefront presentation record
type StoreInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Banner      string `json:"banner"`
}
