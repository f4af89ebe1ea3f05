package draft

import (
	"strconv"
	"strings"
)

// FieldSpec declares one base-info field: its wire name, the label used in
// user-facing errors, whether it must be present, and whether it must parse to
// a positive number. One schema drives both checks so the two lists cannot
// drift apart.
type FieldSpec struct {
	Name     string
	Label    string
	Required bool
	Numeric  bool
	Get      func(f *BaseForm) string
}

// BaseSchema covers every validated field of the base-info step, in the order
// errors report them. The sub-taxonomy selectors are deliberately absent: they
// render on the form but are optional.
var BaseSchema = []FieldSpec{
	{Name: "name", Label: "Product Name", Required: true, Get: func(f *BaseForm) string { return f.Name }},
	{Name: "sku", Label: "SKU", Required: true, Get: func(f *BaseForm) string { return f.SKU }},
	{Name: "slug", Label: "Slug", Required: true, Get: func(f *BaseForm) string { return f.Slug }},
	{Name: "newCategoryId", Label: "Category", Required: true, Get: func(f *BaseForm) string { return f.CategoryID }},
	{Name: "structureId", Label: "Structure", Required: true, Get: func(f *BaseForm) string { return f.StructureID }},
	{Name: "contentId", Label: "Content", Required: true, Get: func(f *BaseForm) string { return f.ContentID }},
	{Name: "gsm", Label: "GSM", Required: true, Numeric: true, Get: func(f *BaseForm) string { return f.GSM }},
	{Name: "oz", Label: "OZ", Required: true, Numeric: true, Get: func(f *BaseForm) string { return f.OZ }},
	{Name: "cm", Label: "Width (CM)", Required: true, Numeric: true, Get: func(f *BaseForm) string { return f.CM }},
	{Name: "inch", Label: "Width (Inch)", Required: true, Numeric: true, Get: func(f *BaseForm) string { return f.Inch }},
	{Name: "quantity", Label: "Quantity", Required: true, Numeric: true, Get: func(f *BaseForm) string { return f.Quantity }},
	{Name: "um", Label: "Unit (UM)", Required: true, Get: func(f *BaseForm) string { return f.Unit }},
	{Name: "currency", Label: "Currency", Required: true, Get: func(f *BaseForm) string { return f.Currency }},
	{Name: "finishId", Label: "Finish", Required: true, Get: func(f *BaseForm) string { return f.FinishID }},
	{Name: "designId", Label: "Design", Required: true, Get: func(f *BaseForm) string { return f.DesignID }},
	{Name: "colorId", Label: "Color", Required: true, Get: func(f *BaseForm) string { return f.ColorID }},
	{Name: "css", Label: "CSS", Required: true, Get: func(f *BaseForm) string { return f.CSS }},
	{Name: "motifsizeId", Label: "Motif Size", Required: true, Get: func(f *BaseForm) string { return f.MotifSizeID }},
	{Name: "suitableforId", Label: "Suitable For", Required: true, Get: func(f *BaseForm) string { return f.SuitableForID }},
	{Name: "vendorId", Label: "Vendor", Required: true, Get: func(f *BaseForm) string { return f.VendorID }},
	{Name: "groupcodeId", Label: "Group Code", Required: true, Get: func(f *BaseForm) string { return f.GroupCodeID }},
	{Name: "purchasePrice", Label: "Purchase Price", Required: true, Numeric: true, Get: func(f *BaseForm) string { return f.PurchasePrice }},
	{Name: "salesPrice", Label: "Sales Price", Required: true, Numeric: true, Get: func(f *BaseForm) string { return f.SalesPrice }},
	{Name: "locationCode", Label: "Location Code", Required: true, Get: func(f *BaseForm) string { return f.LocationCode }},
	{Name: "productIdentifier", Label: "Product Identifier", Required: true, Get: func(f *BaseForm) string { return f.ProductIdentifier }},
}

// ValidationError is the single consolidated error surfaced for a blocked
// submission. Exactly one of Missing or Invalid is populated: the numeric
// check only runs once every required field is present, so a field that is
// both missing and non-numeric is reported once, as missing.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "Please fill in all required fields: " + strings.Join(e.Missing, ", ")
	}
	return "Please enter valid numbers for: " + strings.Join(e.Invalid, ", ")
}

// Validate runs the presence pass and then, only if it succeeded, the
// positive-number pass. A nil return means the form may be staged.
func Validate(form *BaseForm) error {
	var missing []string
	for _, spec := range BaseSchema {
		if !spec.Required {
			continue
		}
		if spec.Get(form) == "" {
			missing = append(missing, spec.Label)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	var invalid []string
	for _, spec := range BaseSchema {
		if !spec.Numeric {
			continue
		}
		v, err := strconv.ParseFloat(spec.Get(form), 64)
		if err != nil || v <= 0 {
			invalid = append(invalid, spec.Label)
		}
	}
	if len(invalid) > 0 {
		return &ValidationError{Invalid: invalid}
	}

	return nil
}
