package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/listview"
)

const serverInstructions = `fleetview serves list views of a vehicle fleet: vehicles, drivers and maintenance records.

Every list tool takes the same arguments:
- search: case-insensitive substring, matched against the entity's search fields (or "fields" when given).
- status: exact status, case-insensitive.
- sort / dir: any field name; dir is asc or desc. Missing or unparseable dates sort last.
- page / pageSize: 1-based. A page outside the result is an error, never silently clamped; retry with page 1.
- mode: client (filter and page the full set) or server (the record source searches and pages).

Rows carry badges: a status badge (success, warning, error, neutral) and, where the entity has a due date,
an urgency (overdue, due_soon within 7 days, on_schedule, unknown).

Read fleetview://docs/fields for the field names of each entity.`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "fleetview://docs/fields",
		Name:        "fields",
		Title:       "List view fields",
		Description: "Searchable and sortable fields, default sort and status badges per entity.",
		Content: "# List view fields\n\n" +
			fieldDoc(vehicle.Schema, vehicle.Statuses) +
			fieldDoc(driver.Schema, driver.Statuses) +
			fieldDoc(maintenance.Schema, maintenance.Statuses),
	},
}

func fieldDoc[T any](schema listview.Schema[T], statuses listview.StatusTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", schema.Entity)
	fmt.Fprintf(&b, "Default sort: %s. Default search: %s.\n\n", schema.DefaultSort, strings.Join(schema.SearchFields, ", "))
	b.WriteString("| field | kind |\n|---|---|\n")
	for _, f := range schema.Fields {
		fmt.Fprintf(&b, "| %s | %s |\n", f.Name, f.Kind)
	}
	b.WriteString("\nStatuses:")
	for _, status := range statuses.Statuses() {
		badge := statuses.Classify(status)
		fmt.Fprintf(&b, " %s (%s)", status, badge.Kind)
	}
	b.WriteString("\n\n")
	return b.String()
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
