package domain

// Product is the catalog backend's fabric product record. Field names follow the
// backend's wire contract; measurement and price fields travel as strings because
// they originate from multipart text parts.
type Product struct {
	ID                string  `json:"_id,omitempty"`
	Name              string  `json:"name"`
	SKU               string  `json:"sku"`
	Slug              string  `json:"slug"`
	ProductIdentifier string  `json:"productIdentifier"`
	LocationCode      string  `json:"locationCode"`
	CSS               string  `json:"css"`
	CategoryID        string  `json:"newCategoryId"`
	StructureID       string  `json:"structureId"`
	ContentID         string  `json:"contentId"`
	FinishID          string  `json:"finishId"`
	DesignID          string  `json:"designId"`
	ColorID           string  `json:"colorId"`
	MotifSizeID       string  `json:"motifsizeId"`
	SuitableForID     string  `json:"suitableforId"`
	VendorID          string  `json:"vendorId"`
	GroupCodeID       string  `json:"groupcodeId"`
	SubStructureID    string  `json:"subStructureId,omitempty"`
	SubFinishID       string  `json:"subFinishId,omitempty"`
	SubSuitableID     string  `json:"subSuitableId,omitempty"`
	GSM               string  `json:"gsm"`
	OZ                string  `json:"oz"`
	CM                string  `json:"cm"`
	Inch              string  `json:"inch"`
	Quantity          float64 `json:"quantity"`
	Unit              string  `json:"um"`
	PurchasePrice     string  `json:"purchasePrice"`
	SalesPrice        string  `json:"salesPrice"`
	Currency          string  `json:"currency"`
	PopularProduct    string  `json:"popularproduct,omitempty"`
	ProductOffer      string  `json:"productoffer,omitempty"`
	TopRatedProduct   string  `json:"topratedproduct,omitempty"`
	Description       string  `json:"description,omitempty"`
	Image             string  `json:"image,omitempty"`
	Image1            string  `json:"image1,omitempty"`
	Image2            string  `json:"image2,omitempty"`
	Video             string  `json:"video,omitempty"`
	CreatedAt         string  `json:"created_at,omitempty"`
	UpdatedAt         string  `json:"updated_at,omitempty"`
}

// TaxonomyItem is a backend-owned classification value referenced by identifier
// from a product (category, structure, color, vendor and so on).
type TaxonomyItem struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Image string `json:"img,omitempty"`
}

// GroupCode clusters related product variants. Unlike products it has no staged
// draft lifecycle; every operation is a direct backend round-trip.
type GroupCode struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Image string `json:"img,omitempty"`
}

// StockAlert is one zero-quantity product surfaced by the notification badge.
type StockAlert struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
