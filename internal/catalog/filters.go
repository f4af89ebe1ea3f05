package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/madhupandey29/shopy-admin-api/internal/domain"
)

// FilterEntry maps a logical product attribute to the backend endpoint that
// supplies its selectable values.
type FilterEntry struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Path  string `json:"-"`
}

// FilterDirectory lists every taxonomy selector on the base-info step, in
// display order.
var FilterDirectory = []FilterEntry{
	{Name: "newCategoryId", Label: "Category", Path: "/api/newcategory/viewcategory"},
	{Name: "structureId", Label: "Structure", Path: "/api/structure/view"},
	{Name: "contentId", Label: "Content", Path: "/api/content/viewcontent"},
	{Name: "finishId", Label: "Finish", Path: "/api/finish/view"},
	{Name: "designId", Label: "Design", Path: "/api/design/view"},
	{Name: "colorId", Label: "Color", Path: "/api/color/view"},
	{Name: "motifsizeId", Label: "Motif Size", Path: "/api/motifsize/view"},
	{Name: "suitableforId", Label: "Suitable For", Path: "/api/suitablefor/view"},
	{Name: "vendorId", Label: "Vendor", Path: "/api/vendor/view"},
	{Name: "groupcodeId", Label: "Group Code", Path: "/api/groupcode/view"},
	{Name: "subStructureId", Label: "Sub Structure", Path: "/api/substructure/view"},
	{Name: "subFinishId", Label: "Sub Finish", Path: "/api/subfinish/view"},
	{Name: "subSuitableId", Label: "Sub Suitable For", Path: "/api/subsuitable/view"},
}

// FilterOptions is the loaded option set for one directory entry. A failed
// lookup leaves Options empty and records the load error; it never aborts the
// other entries.
type FilterOptions struct {
	Name    string                `json:"name"`
	Label   string                `json:"label"`
	Options []domain.TaxonomyItem `json:"options"`
	LoadErr string                `json:"loadError,omitempty"`
}

// TaxonomyAPI loads selector options for the base-info step.
type TaxonomyAPI interface {
	LoadOptions(ctx context.Context) []FilterOptions
}

type taxonomyAPI struct {
	client *Client
}

func NewTaxonomyAPI(client *Client) TaxonomyAPI {
	return &taxonomyAPI{client: client}
}

// LoadOptions fetches all directory entries concurrently and waits for every
// request to settle. Each entry's failure is isolated to that entry.
func (t *taxonomyAPI) LoadOptions(ctx context.Context) []FilterOptions {
	results := make([]FilterOptions, len(FilterDirectory))

	var wg sync.WaitGroup
	for i, entry := range FilterDirectory {
		wg.Add(1)
		go func(i int, entry FilterEntry) {
			defer wg.Done()

			out := FilterOptions{Name: entry.Name, Label: entry.Label, Options: []domain.TaxonomyItem{}}
			var items []domain.TaxonomyItem
			if err := t.client.getJSON(ctx, entry.Path, nil, &items); err != nil {
				out.LoadErr = fmt.Sprintf("Failed to load %s", entry.Label)
			} else {
				out.Options = items
			}
			results[i] = out
		}(i, entry)
	}
	wg.Wait()

	return results
}
