package draft

import (
	"fmt"
	"strconv"

	"github.com/madhupandey29/shopy-admin-api/internal/domain"
)

// Unit conversion factors. The derived fields are always overwritten by these
// conversions whenever the source field changes; they are never independently
// editable.
const (
	GSMToOZ  = 0.0295
	CMToInch = 0.393701
)

// MediaFields names the four binary attachments a product can carry, in
// payload order.
var MediaFields = []string{"image", "image1", "image2", "video"}

// BaseForm is the typed base-info submission. Every value arrives as the form
// string the admin typed or selected; the schema in schema.go decides which
// must be present and which must be positive numbers.
type BaseForm struct {
	ID                string `json:"_id,omitempty"`
	Name              string `json:"name"`
	SKU               string `json:"sku"`
	Slug              string `json:"slug"`
	ProductIdentifier string `json:"productIdentifier"`
	LocationCode      string `json:"locationCode"`
	CSS               string `json:"css"`
	CategoryID        string `json:"newCategoryId"`
	StructureID       string `json:"structureId"`
	ContentID         string `json:"contentId"`
	FinishID          string `json:"finishId"`
	DesignID          string `json:"designId"`
	ColorID           string `json:"colorId"`
	MotifSizeID       string `json:"motifsizeId"`
	SuitableForID     string `json:"suitableforId"`
	VendorID          string `json:"vendorId"`
	GroupCodeID       string `json:"groupcodeId"`
	SubStructureID    string `json:"subStructureId,omitempty"`
	SubFinishID       string `json:"subFinishId,omitempty"`
	SubSuitableID     string `json:"subSuitableId,omitempty"`
	GSM               string `json:"gsm"`
	OZ                string `json:"oz"`
	CM                string `json:"cm"`
	Inch              string `json:"inch"`
	Quantity          string `json:"quantity"`
	Unit              string `json:"um"`
	PurchasePrice     string `json:"purchasePrice"`
	SalesPrice        string `json:"salesPrice"`
	Currency          string `json:"currency"`
	IsPopular         *bool  `json:"isPopular,omitempty"`
	IsTopRated        *bool  `json:"isTopRated,omitempty"`
	IsProductOffer    *bool  `json:"isProductOffer,omitempty"`
	Description       string `json:"description,omitempty"`
}

// Normalize recomputes the derived measurement fields from their sources.
// A source that does not parse leaves its derived field untouched.
func (f *BaseForm) Normalize() {
	if v, err := strconv.ParseFloat(f.GSM, 64); err == nil {
		f.OZ = fmt.Sprintf("%.2f", v*GSMToOZ)
	}
	if v, err := strconv.ParseFloat(f.CM, 64); err == nil {
		f.Inch = fmt.Sprintf("%.2f", v*CMToInch)
	}
}

// StagedRecord is the portion of the draft committed to the session store
// between the two wizard steps. It carries no media: binary data must never be
// serialized into the staged store. The client-only popularity flag has been
// folded into the backend's yes/no enumeration.
type StagedRecord struct {
	ID                string `json:"_id,omitempty"`
	Name              string `json:"name"`
	SKU               string `json:"sku"`
	Slug              string `json:"slug"`
	ProductIdentifier string `json:"productIdentifier"`
	LocationCode      string `json:"locationCode"`
	CSS               string `json:"css"`
	CategoryID        string `json:"newCategoryId"`
	StructureID       string `json:"structureId"`
	ContentID         string `json:"contentId"`
	FinishID          string `json:"finishId"`
	DesignID          string `json:"designId"`
	ColorID           string `json:"colorId"`
	MotifSizeID       string `json:"motifsizeId"`
	SuitableForID     string `json:"suitableforId"`
	VendorID          string `json:"vendorId"`
	GroupCodeID       string `json:"groupcodeId"`
	SubStructureID    string `json:"subStructureId,omitempty"`
	SubFinishID       string `json:"subFinishId,omitempty"`
	SubSuitableID     string `json:"subSuitableId,omitempty"`
	GSM               string `json:"gsm"`
	OZ                string `json:"oz"`
	CM                string `json:"cm"`
	Inch              string `json:"inch"`
	Quantity          string `json:"quantity"`
	Unit              string `json:"um"`
	PurchasePrice     string `json:"purchasePrice"`
	SalesPrice        string `json:"salesPrice"`
	Currency          string `json:"currency"`
	PopularProduct    string `json:"popularproduct"`
	IsTopRated        *bool  `json:"isTopRated,omitempty"`
	IsProductOffer    *bool  `json:"isProductOffer,omitempty"`
	Description       string `json:"description,omitempty"`
}

// Stage derives the backend-shaped staged record from a validated base form.
// The popularity flag becomes the backend's "yes"/"no" string (unset counts as
// "no"); media fields are structurally absent from the record.
func (f *BaseForm) Stage() *StagedRecord {
	popular := "no"
	if f.IsPopular != nil && *f.IsPopular {
		popular = "yes"
	}

	return &StagedRecord{
		ID:                f.ID,
		Name:              f.Name,
		SKU:               f.SKU,
		Slug:              f.Slug,
		ProductIdentifier: f.ProductIdentifier,
		LocationCode:      f.LocationCode,
		CSS:               f.CSS,
		CategoryID:        f.CategoryID,
		StructureID:       f.StructureID,
		ContentID:         f.ContentID,
		FinishID:          f.FinishID,
		DesignID:          f.DesignID,
		ColorID:           f.ColorID,
		MotifSizeID:       f.MotifSizeID,
		SuitableForID:     f.SuitableForID,
		VendorID:          f.VendorID,
		GroupCodeID:       f.GroupCodeID,
		SubStructureID:    f.SubStructureID,
		SubFinishID:       f.SubFinishID,
		SubSuitableID:     f.SubSuitableID,
		GSM:               f.GSM,
		OZ:                f.OZ,
		CM:                f.CM,
		Inch:              f.Inch,
		Quantity:          f.Quantity,
		Unit:              f.Unit,
		PurchasePrice:     f.PurchasePrice,
		SalesPrice:        f.SalesPrice,
		Currency:          f.Currency,
		PopularProduct:    popular,
		IsTopRated:        f.IsTopRated,
		IsProductOffer:    f.IsProductOffer,
		Description:       f.Description,
	}
}

// MetadataForm is the second wizard step. Only set fields merge over the
// staged record.
type MetadataForm struct {
	Description    *string `json:"description,omitempty"`
	IsProductOffer *bool   `json:"isProductOffer,omitempty"`
	IsTopRated     *bool   `json:"isTopRated,omitempty"`
}

// Merge folds the metadata fields over the staged record and strips the
// identifier: updates address the product via the URL, never the payload.
func Merge(staged *StagedRecord, meta *MetadataForm) *StagedRecord {
	merged := *staged
	merged.ID = ""
	if meta == nil {
		return &merged
	}
	if meta.Description != nil {
		merged.Description = *meta.Description
	}
	if meta.IsProductOffer != nil {
		merged.IsProductOffer = meta.IsProductOffer
	}
	if meta.IsTopRated != nil {
		merged.IsTopRated = meta.IsTopRated
	}
	return &merged
}

// FormFromProduct seeds the base form from an existing product for edit mode.
func FormFromProduct(p *domain.Product) *BaseForm {
	form := &BaseForm{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		Slug:              p.Slug,
		ProductIdentifier: p.ProductIdentifier,
		LocationCode:      p.LocationCode,
		CSS:               p.CSS,
		CategoryID:        p.CategoryID,
		StructureID:       p.StructureID,
		ContentID:         p.ContentID,
		FinishID:          p.FinishID,
		DesignID:          p.DesignID,
		ColorID:           p.ColorID,
		MotifSizeID:       p.MotifSizeID,
		SuitableForID:     p.SuitableForID,
		VendorID:          p.VendorID,
		GroupCodeID:       p.GroupCodeID,
		SubStructureID:    p.SubStructureID,
		SubFinishID:       p.SubFinishID,
		SubSuitableID:     p.SubSuitableID,
		GSM:               p.GSM,
		OZ:                p.OZ,
		CM:                p.CM,
		Inch:              p.Inch,
		Quantity:          strconv.FormatFloat(p.Quantity, 'f', -1, 64),
		Unit:              p.Unit,
		PurchasePrice:     p.PurchasePrice,
		SalesPrice:        p.SalesPrice,
		Currency:          p.Currency,
		Description:       p.Description,
	}
	if p.PopularProduct != "" {
		popular := p.PopularProduct == "yes"
		form.IsPopular = &popular
	}
	if p.TopRatedProduct != "" {
		top := p.TopRatedProduct == "yes"
		form.IsTopRated = &top
	}
	if p.ProductOffer != "" {
		offer := p.ProductOffer == "yes"
		form.IsProductOffer = &offer
	}
	return form
}
