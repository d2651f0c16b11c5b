package mockapi

import "github.com/swapcell/swapcell/internal/refdata"

// seedBrands, seedModels and seedVariants are the development catalog.
// IDs are fixed so drafts and cache entries survive server restarts.

func seedBrands() []refdata.Brand {
	return []refdata.Brand{
		{ID: "brand-apple", Name: "Apple"},
		{ID: "brand-samsung", Name: "Samsung"},
		{ID: "brand-oneplus", Name: "OnePlus"},
		{ID: "brand-xiaomi", Name: "Xiaomi"},
		{ID: "brand-google", Name: "Google"},
	}
}

func seedModels() []refdata.Model {
	return []refdata.Model{
		{ID: "model-iphone-14", BrandID: "brand-apple", Name: "iPhone 14"},
		{ID: "model-iphone-13", BrandID: "brand-apple", Name: "iPhone 13"},
		{ID: "model-iphone-se", BrandID: "brand-apple", Name: "iPhone SE"},
		{ID: "model-galaxy-s23", BrandID: "brand-samsung", Name: "Galaxy S23"},
		{ID: "model-galaxy-a54", BrandID: "brand-samsung", Name: "Galaxy A54"},
		{ID: "model-oneplus-11", BrandID: "brand-oneplus", Name: "OnePlus 11"},
		{ID: "model-redmi-note-12", BrandID: "brand-xiaomi", Name: "Redmi Note 12"},
		{ID: "model-pixel-7", BrandID: "brand-google", Name: "Pixel 7"},
		{ID: "model-pixel-7a", BrandID: "brand-google", Name: "Pixel 7a"},
	}
}

func seedVariants() []refdata.Variant {
	return []refdata.Variant{
		{ID: "var-ip14-128-blk", ModelID: "model-iphone-14", Storage: "128GB", RAM: "6GB", Color: "Midnight"},
		{ID: "var-ip14-256-blu", ModelID: "model-iphone-14", Storage: "256GB", RAM: "6GB", Color: "Blue"},
		{ID: "var-ip13-128-wht", ModelID: "model-iphone-13", Storage: "128GB", RAM: "4GB", Color: "Starlight"},
		{ID: "var-s23-256-grn", ModelID: "model-galaxy-s23", Storage: "256GB", RAM: "8GB", Color: "Green"},
		{ID: "var-s23-128-blk", ModelID: "model-galaxy-s23", Storage: "128GB", RAM: "8GB", Color: "Phantom Black"},
		{ID: "var-op11-256-grn", ModelID: "model-oneplus-11", Storage: "256GB", RAM: "16GB", Color: "Eternal Green"},
		{ID: "var-px7-128-obs", ModelID: "model-pixel-7", Storage: "128GB", RAM: "8GB", Color: "Obsidian"},
	}
}

// retailerFixture is a retailer the lead auto-assigner can match.
type retailerFixture struct {
	Location     string
	BusinessName string
}

func seedRetailers() []retailerFixture {
	return []retailerFixture{
		{Location: "Mumbai", BusinessName: "Andheri Mobile Hub"},
		{Location: "Delhi", BusinessName: "CP Phone Exchange"},
		{Location: "Bengaluru", BusinessName: "Indiranagar Devices"},
		{Location: "Pune", BusinessName: "FC Road Cellular"},
	}
}
