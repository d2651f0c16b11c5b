package refdata

import "fmt"

// Brand is a phone manufacturer in the reference catalog.
type Brand struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// Model is a phone model belonging to a Brand.
type Model struct {
	ID      string `json:"id"`
	BrandID string `json:"brandId"`
	Name    string `json:"name"`
}

// Variant is a concrete configuration of a Model.
type Variant struct {
	ID      string `json:"id"`
	ModelID string `json:"modelId"`
	Storage string `json:"storage"`
	RAM     string `json:"ram"`
	Color   string `json:"color"`
}

// Label returns the display string for a variant, e.g. "128GB / 8GB / Black".
func (v Variant) Label() string {
	return fmt.Sprintf("%s / %s / %s", v.Storage, v.RAM, v.Color)
}

// EntityType names one level of the brand -> model -> variant hierarchy.
type EntityType string

const (
	EntityBrand   EntityType = "brand"
	EntityModel   EntityType = "model"
	EntityVariant EntityType = "variant"
)

// FetchError reports a failed reference-data request. It is always
// retryable from the caller's point of view; the client never retries
// on its own.
type FetchError struct {
	Entity    EntityType
	ParentKey string // brandId for models, modelId for variants, "" for brands
	Err       error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.ParentKey == "" {
		return fmt.Sprintf("fetch %ss: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("fetch %ss for %q: %v", e.Entity, e.ParentKey, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }
