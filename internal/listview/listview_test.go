package listview_test

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/rpggio/fleetview/internal/listview"
	"github.com/stretchr/testify/require"
)

type truck struct {
	Reg     string
	Status  string
	Make    string
	Note    *string
	Year    int
	Service string
}

var truckSchema = listview.Schema[truck]{
	Entity: "truck",
	Fields: []listview.Field[truck]{
		listview.StringField("reg", func(t truck) string { return t.Reg }),
		listview.StringField("make", func(t truck) string { return t.Make }),
		listview.OptionalStringField("note", func(t truck) *string { return t.Note }),
		listview.NumberField("year", func(t truck) float64 { return float64(t.Year) }),
		listview.DateField("service", func(t truck) string { return t.Service }),
		listview.StatusField("status", func(t truck) string { return t.Status }),
	},
	SearchFields: []string{"reg", "make"},
	StatusField:  "status",
	DefaultSort:  "reg",
}

func regs(trucks []truck) []string {
	out := make([]string, 0, len(trucks))
	for _, t := range trucks {
		out = append(out, t.Reg)
	}
	return out
}

func numbered(n int) []truck {
	out := make([]truck, n)
	for i := range out {
		out[i] = truck{Reg: fmt.Sprintf("KC%03d", i), Year: 2000 + i%7, Status: "active"}
	}
	return out
}

func TestFilter_SearchScenario(t *testing.T) {
	records := []truck{
		{Reg: "KCA 100A", Status: "active"},
		{Reg: "KCB 200B", Status: "maintenance"},
	}

	got := listview.Filter(records, truckSchema, listview.Config{SearchTerm: "kca", SearchFields: []string{"reg"}})
	require.Equal(t, []truck{records[0]}, got)
}

func TestFilter_EmptyTermKeepsEverything(t *testing.T) {
	records := numbered(5)
	got := listview.Filter(records, truckSchema, listview.Config{})
	require.Equal(t, records, got)
}

func TestFilter_StatusIsCaseInsensitive(t *testing.T) {
	records := []truck{
		{Reg: "A", Status: "Active"},
		{Reg: "B", Status: "inactive"},
		{Reg: "C", Status: "ACTIVE"},
	}
	got := listview.Filter(records, truckSchema, listview.Config{}.WithStatus("active"))
	require.Equal(t, []string{"A", "C"}, regs(got))
}

func TestFilter_StatusIgnoresSurroundingBlanks(t *testing.T) {
	records := []truck{
		{Reg: "A", Status: " scheduled"},
		{Reg: "B", Status: "completed"},
		{Reg: "C", Status: "Scheduled "},
	}
	got := listview.Filter(records, truckSchema, listview.Config{}.WithStatus(" scheduled "))
	require.Equal(t, []string{"A", "C"}, regs(got))
}

func TestFilterStatus(t *testing.T) {
	records := []truck{
		{Reg: "KCA 100A", Make: "Isuzu", Status: "active"},
		{Reg: "KCB 200B", Make: "Isuzu", Status: "maintenance"},
	}

	got := listview.FilterStatus(records, truckSchema, listview.Config{SearchTerm: "nothing"}.WithStatus("ACTIVE"))
	require.Equal(t, []string{"KCA 100A"}, regs(got))

	require.Equal(t, records, listview.FilterStatus(records, truckSchema, listview.Config{SearchTerm: "nothing"}))
}

func TestFilter_SearchAndStatusCombine(t *testing.T) {
	records := []truck{
		{Reg: "KCA 1", Make: "Isuzu", Status: "active"},
		{Reg: "KCA 2", Make: "Isuzu", Status: "inactive"},
		{Reg: "KCB 3", Make: "Toyota", Status: "active"},
	}
	got := listview.Filter(records, truckSchema, listview.Config{SearchTerm: "ISUZU"}.WithStatus("active"))
	require.Equal(t, []string{"KCA 1"}, regs(got))
}

func TestFilter_AbsentFieldIsNonMatch(t *testing.T) {
	note := "needs tyres"
	records := []truck{
		{Reg: "A", Note: &note},
		{Reg: "B"},
	}
	got := listview.Filter(records, truckSchema, listview.Config{SearchTerm: "tyres", SearchFields: []string{"note"}})
	require.Equal(t, []string{"A"}, regs(got))
}

func TestFilter_UnknownSearchFieldMatchesNothing(t *testing.T) {
	got := listview.Filter(numbered(3), truckSchema, listview.Config{SearchTerm: "KC", SearchFields: []string{"colour"}})
	require.Empty(t, got)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := []truck{{Reg: "B"}, {Reg: "A"}}
	before := slices.Clone(records)
	_ = listview.Filter(records, truckSchema, listview.Config{SearchTerm: "a"})
	require.Equal(t, before, records)
}

func TestFilter_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	makes := []string{"Isuzu", "Toyota", "Scania", "Mercedes", "Volvo"}
	terms := []string{"", "i", "TO", "scan", "ZZ", "kc0", "o"}

	for round := 0; round < 50; round++ {
		records := make([]truck, rng.IntN(40))
		for i := range records {
			records[i] = truck{Reg: fmt.Sprintf("KC%d", rng.IntN(100)), Make: makes[rng.IntN(len(makes))]}
		}
		for _, term := range terms {
			cfg := listview.Config{SearchTerm: term}
			once := listview.Filter(records, truckSchema, cfg)
			require.LessOrEqual(t, len(once), len(records))
			for _, rec := range once {
				lower := strings.ToLower(term)
				require.True(t,
					strings.Contains(strings.ToLower(rec.Reg), lower) || strings.Contains(strings.ToLower(rec.Make), lower),
					"record %v does not match %q", rec, term)
			}
			require.Equal(t, once, listview.Filter(once, truckSchema, cfg), "filter is not idempotent for %q", term)
		}
	}
}

func TestSort_StringsUseCollation(t *testing.T) {
	records := []truck{{Reg: "cherry"}, {Reg: "Banana"}, {Reg: "apple"}}
	got := listview.Sort(records, truckSchema, "reg", listview.Ascending)
	require.Equal(t, []string{"apple", "Banana", "cherry"}, regs(got))
}

func TestSort_Numbers(t *testing.T) {
	records := []truck{{Reg: "a", Year: 2020}, {Reg: "b", Year: 2018}, {Reg: "c", Year: 2022}}
	got := listview.Sort(records, truckSchema, "year", listview.Descending)
	require.Equal(t, []string{"c", "a", "b"}, regs(got))
}

func TestSort_InvalidDatesSortLast(t *testing.T) {
	records := []truck{
		{Reg: "bad", Service: "soon"},
		{Reg: "late", Service: "2025-03-01"},
		{Reg: "missing"},
		{Reg: "early", Service: "2024-11-20"},
	}
	got := listview.Sort(records, truckSchema, "service", listview.Ascending)
	require.Equal(t, []string{"early", "late", "bad", "missing"}, regs(got))
}

func TestSort_Stability(t *testing.T) {
	records := []truck{
		{Reg: "first", Year: 2020},
		{Reg: "second", Year: 2019},
		{Reg: "third", Year: 2020},
		{Reg: "fourth", Year: 2019},
		{Reg: "fifth", Year: 2020},
	}
	got := listview.Sort(records, truckSchema, "year", listview.Ascending)
	require.Equal(t, []string{"second", "fourth", "first", "third", "fifth"}, regs(got))

	got = listview.Sort(records, truckSchema, "year", listview.Descending)
	require.Equal(t, []string{"first", "third", "fifth", "second", "fourth"}, regs(got))
}

func TestSort_UnknownFieldKeepsOrder(t *testing.T) {
	records := []truck{{Reg: "b"}, {Reg: "a"}, {Reg: "c"}}
	got := listview.Sort(records, truckSchema, "colour", listview.Descending)
	require.Equal(t, records, got)
}

func TestSort_AbsentOptionalValuesCompareEqual(t *testing.T) {
	note := "x"
	records := []truck{{Reg: "a"}, {Reg: "b", Note: &note}, {Reg: "c"}}
	got := listview.Sort(records, truckSchema, "note", listview.Descending)
	require.Equal(t, []string{"a", "b", "c"}, regs(got))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	records := []truck{{Reg: "b"}, {Reg: "a"}}
	before := slices.Clone(records)
	_ = listview.Sort(records, truckSchema, "reg", listview.Ascending)
	require.Equal(t, before, records)
}

func TestSort_DescendingReversesAscending(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for round := 0; round < 30; round++ {
		perm := rng.Perm(20)
		records := make([]truck, len(perm))
		for i, p := range perm {
			records[i] = truck{
				Reg:     fmt.Sprintf("KC%03d", p),
				Year:    p,
				Service: fmt.Sprintf("2025-01-%02d", p+1),
			}
		}
		for _, field := range []string{"reg", "year", "service"} {
			asc := listview.Sort(records, truckSchema, field, listview.Ascending)
			desc := listview.Sort(records, truckSchema, field, listview.Descending)
			slices.Reverse(asc)
			require.Equal(t, asc, desc, "field %s", field)
		}
	}
}

func TestPaginate_LastPageScenario(t *testing.T) {
	res, err := listview.Paginate(numbered(25), 3, 10)
	require.NoError(t, err)
	require.Len(t, res.Items, 5)
	require.Equal(t, 3, res.TotalPages)
	require.Equal(t, 25, res.TotalItems)
	require.Equal(t, 3, res.Page)
	require.Equal(t, 10, res.PageSize)
}

func TestPaginate_PageZeroIsInvalid(t *testing.T) {
	_, err := listview.Paginate(numbered(25), 0, 10)
	require.ErrorIs(t, err, listview.ErrInvalidConfiguration)
}

func TestPaginate_InvalidConfigurations(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		page     int
		pageSize int
	}{
		{name: "zero page size", n: 5, page: 1, pageSize: 0},
		{name: "negative page size", n: 5, page: 1, pageSize: -3},
		{name: "negative page", n: 5, page: -1, pageSize: 2},
		{name: "past last page", n: 5, page: 4, pageSize: 2},
		{name: "second page of empty list", n: 0, page: 2, pageSize: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := listview.Paginate(numbered(tt.n), tt.page, tt.pageSize)
			require.ErrorIs(t, err, listview.ErrInvalidConfiguration)
		})
	}
}

func TestPaginate_EmptyFirstPage(t *testing.T) {
	res, err := listview.Paginate([]truck{}, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, res.Items)
	require.Empty(t, res.Items)
	require.Equal(t, 0, res.TotalPages)
	require.Equal(t, 0, res.TotalItems)
}

func TestPaginate_Exactness(t *testing.T) {
	for n := 1; n <= 30; n++ {
		records := numbered(n)
		for size := 1; size <= 12; size++ {
			totalPages := (n + size - 1) / size
			for page := 1; page <= totalPages; page++ {
				res, err := listview.Paginate(records, page, size)
				require.NoError(t, err)
				start := (page - 1) * size
				end := min(page*size, n)
				require.Equal(t, records[start:end], res.Items)
				require.Equal(t, totalPages, res.TotalPages)
				if page < totalPages {
					require.Len(t, res.Items, size)
				}
			}
		}
	}
}

func TestPaginate_AppendDoesNotClobberInput(t *testing.T) {
	records := numbered(4)
	res, err := listview.Paginate(records, 1, 2)
	require.NoError(t, err)
	_ = append(res.Items, truck{Reg: "intruder"})
	require.Equal(t, "KC002", records[2].Reg)
}

func TestApply_Composition(t *testing.T) {
	records := []truck{
		{Reg: "KCD 4", Make: "Isuzu", Status: "active", Year: 2019},
		{Reg: "KCA 1", Make: "Toyota", Status: "active", Year: 2021},
		{Reg: "KCC 3", Make: "Isuzu", Status: "inactive", Year: 2018},
		{Reg: "KCB 2", Make: "Isuzu", Status: "active", Year: 2020},
	}
	cfg := listview.Config{
		SearchTerm:    "isuzu",
		SortField:     "year",
		SortDirection: listview.Descending,
		Page:          1,
		PageSize:      10,
	}.WithStatus("active")

	res, err := listview.Apply(records, truckSchema, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"KCB 2", "KCD 4"}, regs(res.Items))
	require.Equal(t, 2, res.TotalItems)
	require.Equal(t, 1, res.TotalPages)
}

func TestApply_DefaultSort(t *testing.T) {
	records := []truck{{Reg: "b"}, {Reg: "c"}, {Reg: "a"}}
	res, err := listview.Apply(records, truckSchema, listview.Config{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, regs(res.Items))
	require.Equal(t, 3, res.TotalItems)
	require.Equal(t, 2, res.TotalPages)
}

func TestApply_TotalsCountFilteredRecords(t *testing.T) {
	records := numbered(25)
	records[3].Status = "inactive"
	res, err := listview.Apply(records, truckSchema, listview.Config{Page: 1, PageSize: 10}.WithStatus("inactive"))
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalItems)
	require.Equal(t, 1, res.TotalPages)
}

func TestApply_RejectsBadPageSize(t *testing.T) {
	_, err := listview.Apply(numbered(3), truckSchema, listview.Config{Page: 1})
	require.ErrorIs(t, err, listview.ErrInvalidConfiguration)
}

func TestApplyPage_UsesSourceMetadata(t *testing.T) {
	src := listview.SourcePage[truck]{
		Items:      []truck{{Reg: "KC9"}, {Reg: "KC7"}, {Reg: "KC8"}},
		Total:      23,
		Page:       3,
		TotalPages: 3,
	}
	cfg := listview.Config{SortField: "reg", Page: 3, PageSize: 10, Mode: listview.ModeServerSide}

	res, err := listview.ApplyPage(src, truckSchema, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"KC7", "KC8", "KC9"}, regs(res.Items))
	require.Equal(t, 23, res.TotalItems)
	require.Equal(t, 3, res.TotalPages)
	require.Equal(t, 3, res.Page)
}

func TestApplyPage_ComputesMissingTotalPages(t *testing.T) {
	src := listview.SourcePage[truck]{Items: numbered(4), Total: 14}
	res, err := listview.ApplyPage(src, truckSchema, listview.Config{Page: 2, PageSize: 5})
	require.NoError(t, err)
	require.Equal(t, 3, res.TotalPages)
	require.Equal(t, 2, res.Page)
}

func TestApplyPage_TrimsOversizedPage(t *testing.T) {
	src := listview.SourcePage[truck]{Items: numbered(8), Total: 8, Page: 1, TotalPages: 1}
	res, err := listview.ApplyPage(src, truckSchema, listview.Config{Page: 1, PageSize: 5})
	require.NoError(t, err)
	require.Len(t, res.Items, 5)
}

func TestApplyPage_FiltersStatusTheSourceIgnored(t *testing.T) {
	src := listview.SourcePage[truck]{
		Items: []truck{
			{Reg: "KCA 100A", Status: "active"},
			{Reg: "KCB 200B", Status: "maintenance"},
			{Reg: "KCC 300C", Status: "Active"},
		},
		Total:      3,
		Page:       1,
		TotalPages: 1,
	}
	cfg := listview.Config{Page: 1, PageSize: 10, Mode: listview.ModeServerSide}.WithStatus("active")

	res, err := listview.ApplyPage(src, truckSchema, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"KCA 100A", "KCC 300C"}, regs(res.Items))
	require.Equal(t, 1, res.Page)
}

func TestParseDirectionAndMode(t *testing.T) {
	d, err := listview.ParseDirection("DESC")
	require.NoError(t, err)
	require.Equal(t, listview.Descending, d)

	d, err = listview.ParseDirection("")
	require.NoError(t, err)
	require.Equal(t, listview.Ascending, d)

	_, err = listview.ParseDirection("sideways")
	require.ErrorIs(t, err, listview.ErrInvalidConfiguration)

	m, err := listview.ParseMode("server")
	require.NoError(t, err)
	require.Equal(t, listview.ModeServerSide, m)

	_, err = listview.ParseMode("hybrid")
	require.ErrorIs(t, err, listview.ErrInvalidConfiguration)
}

func TestNewView(t *testing.T) {
	res := listview.Result[truck]{Items: []truck{{Reg: "a"}}, Page: 1, PageSize: 5, TotalItems: 1, TotalPages: 1}
	view := listview.NewView(res, truckSchema, listview.Config{Page: 1, PageSize: 5}, func(t truck) string { return t.Reg })
	require.Equal(t, []string{"a"}, view.Rows)
	require.Equal(t, "reg", view.SortField)
	require.Equal(t, listview.Ascending, view.SortDirection)
	require.Equal(t, listview.ModeClientSide, view.Mode)
	require.Empty(t, view.Error)
}

func TestFailedView(t *testing.T) {
	view := listview.FailedView[truck, string](truckSchema, listview.Config{Page: 2, PageSize: 5}, fmt.Errorf("boom"))
	require.NotNil(t, view.Rows)
	require.Empty(t, view.Rows)
	require.Equal(t, "boom", view.Error)
	require.Equal(t, 2, view.Page)
}

func TestSchema_CheckFields(t *testing.T) {
	require.NoError(t, truckSchema.CheckFields(listview.Config{SortField: "YEAR", SearchFields: []string{"make"}}))
	require.NoError(t, truckSchema.CheckFields(listview.Config{}))

	err := truckSchema.CheckFields(listview.Config{SortField: "colour"})
	require.ErrorIs(t, err, listview.ErrInvalidConfiguration)
	require.Contains(t, err.Error(), "reg, make, note, year, service, status")

	err = truckSchema.CheckFields(listview.Config{SearchFields: []string{"reg", "vin"}})
	require.ErrorIs(t, err, listview.ErrInvalidConfiguration)
}
