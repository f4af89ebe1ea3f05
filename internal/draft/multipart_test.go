package draft

import (
	"io"
	"mime"
	"mime/multipart"
	"testing"
)

type payloadPart struct {
	value       string
	filename    string
	contentType string
}

func parsePayload(t *testing.T, rec *StagedRecord, files map[string]Attachment) (map[string][]payloadPart, []string) {
	t.Helper()

	buf, contentType, err := BuildPayload(rec, files)
	if err != nil {
		t.Fatalf("BuildPayload failed: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("unexpected content type %q: %v", contentType, err)
	}

	reader := multipart.NewReader(buf, params["boundary"])
	parts := make(map[string][]payloadPart)
	var order []string
	for {
		p, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read part: %v", err)
		}
		data, _ := io.ReadAll(p)
		parts[p.FormName()] = append(parts[p.FormName()], payloadPart{
			value:       string(data),
			filename:    p.FileName(),
			contentType: p.Header.Get("Content-Type"),
		})
		order = append(order, p.FormName())
	}
	return parts, order
}

func single(t *testing.T, parts map[string][]payloadPart, name string) payloadPart {
	t.Helper()
	got, ok := parts[name]
	if !ok {
		t.Fatalf("payload missing part %q", name)
	}
	if len(got) != 1 {
		t.Fatalf("part %q appears %d times", name, len(got))
	}
	return got[0]
}

func TestBuildPayloadScalarsAndRemappings(t *testing.T) {
	yes := true
	rec := validForm().Stage()
	rec.Description = "brushed back"
	rec.IsProductOffer = &yes

	parts, _ := parsePayload(t, rec, nil)

	if got := single(t, parts, "name").value; got != "Cotton Twill" {
		t.Errorf("name = %q", got)
	}
	if got := single(t, parts, "popularproduct").value; got != "no" {
		t.Errorf("popularproduct = %q", got)
	}

	// The description travels under both names even when identical.
	if got := single(t, parts, "productdescription").value; got != "brushed back" {
		t.Errorf("productdescription = %q", got)
	}
	if got := single(t, parts, "description").value; got != "brushed back" {
		t.Errorf("description = %q", got)
	}

	if got := single(t, parts, "productoffer").value; got != "yes" {
		t.Errorf("productoffer = %q", got)
	}
	if got := single(t, parts, "topratedproduct").value; got != "no" {
		t.Errorf("topratedproduct = %q", got)
	}

	// No raw boolean field names may leak into the payload.
	for _, leaked := range []string{"isPopular", "isTopRated", "isProductOffer"} {
		if _, ok := parts[leaked]; ok {
			t.Errorf("payload leaked client-only field %q", leaked)
		}
	}
}

func TestBuildPayloadAppendsDescriptionPairWhenEmpty(t *testing.T) {
	rec := validForm().Stage()

	parts, _ := parsePayload(t, rec, nil)

	if got := single(t, parts, "productdescription").value; got != "" {
		t.Errorf("empty productdescription expected, got %q", got)
	}
	if got := single(t, parts, "description").value; got != "" {
		t.Errorf("empty description expected, got %q", got)
	}
}

func TestBuildPayloadSkipsEmptyScalars(t *testing.T) {
	rec := validForm().Stage()
	rec.SubStructureID = ""
	rec.SubFinishID = ""

	parts, _ := parsePayload(t, rec, nil)

	for _, absent := range []string{"subStructureId", "subFinishId"} {
		if _, ok := parts[absent]; ok {
			t.Errorf("empty scalar %q must be omitted", absent)
		}
	}
}

func TestBuildPayloadMediaParts(t *testing.T) {
	rec := validForm().Stage()
	files := map[string]Attachment{
		"image": {Filename: "front.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}},
		"video": {Filename: "roll.mp4", Data: []byte("mp4data")},
	}

	parts, order := parsePayload(t, rec, files)

	img := single(t, parts, "image")
	if img.filename != "front.jpg" || img.contentType != "image/jpeg" {
		t.Errorf("image part = %+v", img)
	}

	vid := single(t, parts, "video")
	if vid.contentType != "application/octet-stream" {
		t.Errorf("missing content type must default, got %q", vid.contentType)
	}
	if vid.value != "mp4data" {
		t.Errorf("video data = %q", vid.value)
	}

	if _, ok := parts["image1"]; ok {
		t.Error("absent attachment must not produce a part")
	}

	// Media parts come after every scalar, in fixed order.
	var mediaOrder []string
	for _, name := range order {
		if name == "image" || name == "video" {
			mediaOrder = append(mediaOrder, name)
		}
	}
	if len(mediaOrder) != 2 || mediaOrder[0] != "image" || mediaOrder[1] != "video" {
		t.Errorf("media order = %v", mediaOrder)
	}
	if order[len(order)-1] != "video" {
		t.Errorf("media must trail the payload, last part = %q", order[len(order)-1])
	}
}
