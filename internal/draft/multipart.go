package draft

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
)

// Attachment is one staged binary part. Attachments live in the transient file
// store only; they are never serialized alongside the staged record.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// scalarPairs lists every scalar part of the merged record by its backend wire
// name, in payload order. Description and the two boolean flags are absent
// here on purpose: they are remapped explicitly by BuildPayload.
func scalarPairs(rec *StagedRecord) [][2]string {
	return [][2]string{
		{"name", rec.Name},
		{"sku", rec.SKU},
		{"slug", rec.Slug},
		{"productIdentifier", rec.ProductIdentifier},
		{"locationCode", rec.LocationCode},
		{"css", rec.CSS},
		{"newCategoryId", rec.CategoryID},
		{"structureId", rec.StructureID},
		{"contentId", rec.ContentID},
		{"finishId", rec.FinishID},
		{"designId", rec.DesignID},
		{"colorId", rec.ColorID},
		{"motifsizeId", rec.MotifSizeID},
		{"suitableforId", rec.SuitableForID},
		{"vendorId", rec.VendorID},
		{"groupcodeId", rec.GroupCodeID},
		{"subStructureId", rec.SubStructureID},
		{"subFinishId", rec.SubFinishID},
		{"subSuitableId", rec.SubSuitableID},
		{"gsm", rec.GSM},
		{"oz", rec.OZ},
		{"cm", rec.CM},
		{"inch", rec.Inch},
		{"quantity", rec.Quantity},
		{"um", rec.Unit},
		{"purchasePrice", rec.PurchasePrice},
		{"salesPrice", rec.SalesPrice},
		{"currency", rec.Currency},
		{"popularproduct", rec.PopularProduct},
	}
}

func yesNo(flag *bool) string {
	if flag != nil && *flag {
		return "yes"
	}
	return "no"
}

// BuildPayload assembles the single multipart submission the backend expects:
// every present scalar by its original name, the description duplicated under
// both productdescription and description, the offer and top-rated flags as
// yes/no strings, then the media parts that exist in the file store.
func BuildPayload(rec *StagedRecord, files map[string]Attachment) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, pair := range scalarPairs(rec) {
		if pair[1] == "" {
			continue
		}
		if err := w.WriteField(pair[0], pair[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", pair[0], err)
		}
	}

	// Backend-required remappings, appended even when empty.
	if err := w.WriteField("productdescription", rec.Description); err != nil {
		return nil, "", fmt.Errorf("failed to write productdescription: %w", err)
	}
	if err := w.WriteField("description", rec.Description); err != nil {
		return nil, "", fmt.Errorf("failed to write description: %w", err)
	}
	if err := w.WriteField("productoffer", yesNo(rec.IsProductOffer)); err != nil {
		return nil, "", fmt.Errorf("failed to write productoffer: %w", err)
	}
	if err := w.WriteField("topratedproduct", yesNo(rec.IsTopRated)); err != nil {
		return nil, "", fmt.Errorf("failed to write topratedproduct: %w", err)
	}

	for _, field := range MediaFields {
		att, ok := files[field]
		if !ok {
			continue
		}
		part, err := createFilePart(w, field, att)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(att.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write %s data: %w", field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize payload: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

func createFilePart(w *multipart.Writer, field string, att Attachment) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
		field, att.Filename))
	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s part: %w", field, err)
	}
	return part, nil
}
