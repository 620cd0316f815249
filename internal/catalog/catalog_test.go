package catalog_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/mtbuller-resort/internal/catalog"
	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// fixedNow is the clock every test catalog runs on.
var fixedNow = time.Date(2025, 7, 14, 15, 30, 0, 0, time.UTC)

// ---- helpers ---------------------------------------------------------------

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.New(catalog.WithClock(func() time.Time { return fixedNow }))
}

// seededCatalog returns a catalog holding one customer and one hotel.
func seededCatalog(t *testing.T) (*catalog.Catalog, domain.Customer, domain.Accommodation) {
	t.Helper()
	c := newCatalog(t)
	cust, err := c.AddCustomer("Ann", "ann@example.com", "Beginner")
	require.NoError(t, err)
	acc, err := c.AddAccommodation("Hotel", 100)
	require.NoError(t, err)
	return c, cust, acc
}

func ptr[T any](v T) *T { return &v }

// ---- AddCustomer -----------------------------------------------------------

func TestCatalog_AddCustomer_Valid(t *testing.T) {
	c := newCatalog(t)

	got, err := c.AddCustomer("Ann", "ann@example.com", "Beginner")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, domain.SkillBeginner, got.SkillLevel)
	assert.False(t, got.HasPackage)
	assert.Len(t, c.ListCustomers(), 1)
}

func TestCatalog_AddCustomer_InvalidEmail(t *testing.T) {
	c := newCatalog(t)

	_, err := c.AddCustomer("Ann", "not-an-email", "Beginner")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, c.ListCustomers(), "a rejected customer must not be stored")
}

func TestCatalog_AddCustomer_Validation(t *testing.T) {
	tests := []struct {
		name, custName, email, skill string
	}{
		{"empty name", "", "ann@example.com", "Beginner"},
		{"whitespace name", "   ", "ann@example.com", "Beginner"},
		{"empty email", "Ann", "", "Beginner"},
		{"display name in email", "Ann", "Ann <ann@example.com>", "Beginner"},
		{"unknown skill", "Ann", "ann@example.com", "Pro"},
		{"empty skill", "Ann", "ann@example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCatalog(t)

			_, err := c.AddCustomer(tt.custName, tt.email, tt.skill)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, c.ListCustomers())
		})
	}
}

func TestCatalog_AddCustomer_SkillCaseInsensitive(t *testing.T) {
	c := newCatalog(t)

	got, err := c.AddCustomer("Bob", "bob@example.com", "expert")

	require.NoError(t, err)
	assert.Equal(t, domain.SkillExpert, got.SkillLevel)
}

func TestCatalog_AddCustomer_UniqueIDs(t *testing.T) {
	c := newCatalog(t)

	a, err := c.AddCustomer("Ann", "ann@example.com", "Beginner")
	require.NoError(t, err)
	b, err := c.AddCustomer("Ann", "ann@example.com", "Beginner")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestCatalog_FindCustomerByID_NotFound(t *testing.T) {
	c := newCatalog(t)

	_, err := c.FindCustomerByID(uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- accommodations --------------------------------------------------------

func TestCatalog_AddAccommodation_SequentialIDs(t *testing.T) {
	c := newCatalog(t)

	a, err := c.AddAccommodation("Hotel", 100)
	require.NoError(t, err)
	b, err := c.AddAccommodation("cabin", 50)
	require.NoError(t, err)

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, domain.AccommodationCabin, b.Type)
	assert.True(t, b.Available)
}

func TestCatalog_AddAccommodation_Invalid(t *testing.T) {
	c := newCatalog(t)

	_, err := c.AddAccommodation("Igloo", 100)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = c.AddAccommodation("Hotel", -1)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, c.ListAccommodations())
}

func TestCatalog_FindAccommodationByID(t *testing.T) {
	c, _, acc := seededCatalog(t)

	got, err := c.FindAccommodationByID(acc.ID)
	require.NoError(t, err)
	assert.Equal(t, acc, got)

	_, err = c.FindAccommodationByID(99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// filterCatalog builds the inventory
// [(1, Hotel, 100, available), (2, Cabin, 50, unavailable), (3, Hotel, 80, available)].
func filterCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := newCatalog(t)
	_, err := c.AddAccommodation("Hotel", 100)
	require.NoError(t, err)
	cabin, err := c.AddAccommodation("Cabin", 50)
	require.NoError(t, err)
	_, err = c.AddAccommodation("Hotel", 80)
	require.NoError(t, err)

	cust, err := c.AddCustomer("Ann", "ann@example.com", "Beginner")
	require.NoError(t, err)
	_, err = c.CreatePackage(cust.ID, cabin.ID, "now", 2)
	require.NoError(t, err)
	return c
}

func ids(accs []domain.Accommodation) []int {
	out := make([]int, 0, len(accs))
	for _, a := range accs {
		out = append(out, a.ID)
	}
	return out
}

func TestCatalog_ListAvailableAccommodations_ByType(t *testing.T) {
	c := filterCatalog(t)

	got, err := c.ListAvailableAccommodations(domain.AccommodationFilter{Type: ptr("Hotel")})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids(got))
}

func TestCatalog_ListAvailableAccommodations_ByMaxPrice(t *testing.T) {
	c := filterCatalog(t)

	got, err := c.ListAvailableAccommodations(domain.AccommodationFilter{MaxPrice: ptr(90.0)})

	require.NoError(t, err)
	assert.Equal(t, []int{3}, ids(got))
}

func TestCatalog_ListAvailableAccommodations_NoFilter(t *testing.T) {
	c := filterCatalog(t)

	all, err := c.ListAvailableAccommodations(domain.AccommodationFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids(all))

	// "All" and a lower-case type behave like no filter and a cased filter.
	got, err := c.ListAvailableAccommodations(domain.AccommodationFilter{Type: ptr("all")})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids(got))

	got, err = c.ListAvailableAccommodations(domain.AccommodationFilter{Type: ptr("hotel"), MaxPrice: ptr(100.0)})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids(got), "price bound is inclusive")
}

func TestCatalog_ListAvailableAccommodations_EmptyIsNotAnError(t *testing.T) {
	c := filterCatalog(t)

	got, err := c.ListAvailableAccommodations(domain.AccommodationFilter{Type: ptr("Lodge")})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCatalog_ListAvailableAccommodations_BadFilter(t *testing.T) {
	c := filterCatalog(t)

	_, err := c.ListAvailableAccommodations(domain.AccommodationFilter{Type: ptr("Igloo")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = c.ListAvailableAccommodations(domain.AccommodationFilter{MaxPrice: ptr(0.0)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	for _, price := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got, err := c.ListAvailableAccommodations(domain.AccommodationFilter{MaxPrice: ptr(price)})
		assert.ErrorIs(t, err, domain.ErrValidation, "max price %v", price)
		assert.Nil(t, got)
	}
}

// ---- CreatePackage ---------------------------------------------------------

func TestCatalog_CreatePackage_Valid(t *testing.T) {
	c, cust, acc := seededCatalog(t)

	got, err := c.CreatePackage(cust.ID, acc.ID, "2025-08-01", 5)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), got.StartDate)
	assert.Equal(t, 5, got.Days)
	assert.Nil(t, got.LiftPass)
	assert.Nil(t, got.Lessons)

	liveAcc, err := c.FindAccommodationByID(acc.ID)
	require.NoError(t, err)
	assert.False(t, liveAcc.Available)

	liveCust, err := c.FindCustomerByID(cust.ID)
	require.NoError(t, err)
	assert.True(t, liveCust.HasPackage)

	assert.Len(t, c.ListPackages(), 1)
	assert.True(t, got.Customer.HasPackage, "returned snapshot reflects the new flags")
	assert.False(t, got.Accommodation.Available)
}

func TestCatalog_CreatePackage_NowSentinel(t *testing.T) {
	for _, date := range []string{"now", "NOW", ""} {
		t.Run(date, func(t *testing.T) {
			c, cust, acc := seededCatalog(t)

			got, err := c.CreatePackage(cust.ID, acc.ID, date, 1)

			require.NoError(t, err)
			assert.Equal(t, time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC), got.StartDate)
		})
	}
}

func TestCatalog_CreatePackage_DaysBoundary(t *testing.T) {
	for _, days := range []int{0, -3} {
		c, cust, acc := seededCatalog(t)

		_, err := c.CreatePackage(cust.ID, acc.ID, "now", days)

		assert.ErrorIs(t, err, domain.ErrValidation, "days=%d", days)
		assert.Empty(t, c.ListPackages())
	}

	c, cust, acc := seededCatalog(t)
	_, err := c.CreatePackage(cust.ID, acc.ID, "now", 1)
	assert.NoError(t, err, "a one-day package is valid")
}

func TestCatalog_CreatePackage_DaysCheckedBeforeLookup(t *testing.T) {
	c := newCatalog(t)

	_, err := c.CreatePackage(uuid.New(), 42, "now", 0)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalog_CreatePackage_InvalidDate(t *testing.T) {
	for _, date := range []string{"2025-13-01", "01/08/2025", "tomorrow", "2025-02-30"} {
		c, cust, acc := seededCatalog(t)

		_, err := c.CreatePackage(cust.ID, acc.ID, date, 3)

		assert.ErrorIs(t, err, domain.ErrValidation, "date=%q", date)
		assertUntouched(t, c, cust, acc)
	}
}

func TestCatalog_CreatePackage_NotFound(t *testing.T) {
	c, cust, acc := seededCatalog(t)

	_, err := c.CreatePackage(uuid.New(), acc.ID, "now", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.CreatePackage(cust.ID, 99, "now", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assertUntouched(t, c, cust, acc)
}

func TestCatalog_CreatePackage_AccommodationUnavailable(t *testing.T) {
	c, cust, acc := seededCatalog(t)
	_, err := c.CreatePackage(cust.ID, acc.ID, "now", 3)
	require.NoError(t, err)

	other, err := c.AddCustomer("Bob", "bob@example.com", "Expert")
	require.NoError(t, err)
	customersBefore := c.ListCustomers()
	accommodationsBefore := c.ListAccommodations()
	packagesBefore := c.ListPackages()

	_, err = c.CreatePackage(other.ID, acc.ID, "now", 3)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, customersBefore, c.ListCustomers())
	assert.Equal(t, accommodationsBefore, c.ListAccommodations())
	assert.Equal(t, packagesBefore, c.ListPackages())
}

func TestCatalog_CreatePackage_CustomerAlreadyPackaged(t *testing.T) {
	c, cust, acc := seededCatalog(t)
	_, err := c.CreatePackage(cust.ID, acc.ID, "now", 3)
	require.NoError(t, err)

	second, err := c.AddAccommodation("Cabin", 60)
	require.NoError(t, err)

	_, err = c.CreatePackage(cust.ID, second.ID, "now", 3)

	assert.ErrorIs(t, err, domain.ErrConflict)
	live, err := c.FindAccommodationByID(second.ID)
	require.NoError(t, err)
	assert.True(t, live.Available, "failed create must not reserve the accommodation")
	assert.Len(t, c.ListPackages(), 1)
}

// assertUntouched checks that a failed operation left the seeded catalog as it was.
func assertUntouched(t *testing.T, c *catalog.Catalog, cust domain.Customer, acc domain.Accommodation) {
	t.Helper()
	assert.Empty(t, c.ListPackages())
	liveCust, err := c.FindCustomerByID(cust.ID)
	require.NoError(t, err)
	assert.False(t, liveCust.HasPackage)
	liveAcc, err := c.FindAccommodationByID(acc.ID)
	require.NoError(t, err)
	assert.True(t, liveAcc.Available)
}

// ---- extras ----------------------------------------------------------------

func packagedCatalog(t *testing.T) (*catalog.Catalog, domain.TravelPackage) {
	t.Helper()
	c, cust, acc := seededCatalog(t)
	p, err := c.CreatePackage(cust.ID, acc.ID, "2025-08-01", 4)
	require.NoError(t, err)
	return c, p
}

func TestCatalog_AttachLiftPass_Daily(t *testing.T) {
	c, p := packagedCatalog(t)

	got, err := c.AttachLiftPass(p.ID, "daily", 3)

	require.NoError(t, err)
	assert.Equal(t, domain.LiftPass{Kind: domain.PassDaily, Days: 3}, got)
	live, err := c.FindPackageByID(p.ID)
	require.NoError(t, err)
	require.NotNil(t, live.LiftPass)
	assert.Equal(t, got, *live.LiftPass)
}

func TestCatalog_AttachLiftPass_SeasonIgnoresDays(t *testing.T) {
	c, p := packagedCatalog(t)

	got, err := c.AttachLiftPass(p.ID, "Season", 12)

	require.NoError(t, err)
	assert.Equal(t, domain.LiftPass{Kind: domain.PassSeason, Days: 0}, got)
}

func TestCatalog_AttachLiftPass_Invalid(t *testing.T) {
	c, p := packagedCatalog(t)

	_, err := c.AttachLiftPass(p.ID, "Daily", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = c.AttachLiftPass(p.ID, "Weekly", 3)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = c.AttachLiftPass(uuid.New(), "Daily", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	live, err := c.FindPackageByID(p.ID)
	require.NoError(t, err)
	assert.Nil(t, live.LiftPass)
}

func TestCatalog_AttachLiftPass_Duplicate(t *testing.T) {
	c, p := packagedCatalog(t)
	first, err := c.AttachLiftPass(p.ID, "Daily", 3)
	require.NoError(t, err)

	_, err = c.AttachLiftPass(p.ID, "Season", 0)

	assert.ErrorIs(t, err, domain.ErrConflict)
	live, err := c.FindPackageByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, first, *live.LiftPass, "first pass must be unchanged")
}

func TestCatalog_AttachLessons_CopiesSkillLevel(t *testing.T) {
	c, p := packagedCatalog(t)

	got, err := c.AttachLessons(p.ID, 2)

	require.NoError(t, err)
	assert.Equal(t, domain.Lessons{SkillLevel: domain.SkillBeginner, Count: 2}, got)
}

func TestCatalog_AttachLessons_Invalid(t *testing.T) {
	c, p := packagedCatalog(t)

	_, err := c.AttachLessons(p.ID, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = c.AttachLessons(uuid.New(), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_AttachLessons_Duplicate(t *testing.T) {
	c, p := packagedCatalog(t)
	first, err := c.AttachLessons(p.ID, 2)
	require.NoError(t, err)

	_, err = c.AttachLessons(p.ID, 5)

	assert.ErrorIs(t, err, domain.ErrConflict)
	live, err := c.FindPackageByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, first, *live.Lessons)
}

func TestCatalog_ReturnedPackagesAreCopies(t *testing.T) {
	c, p := packagedCatalog(t)
	_, err := c.AttachLessons(p.ID, 2)
	require.NoError(t, err)

	got, err := c.FindPackageByID(p.ID)
	require.NoError(t, err)
	got.Lessons.Count = 99

	again, err := c.FindPackageByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Lessons.Count)
}

// ---- filtered views --------------------------------------------------------

func TestCatalog_FilteredViews(t *testing.T) {
	c := newCatalog(t)
	ann, err := c.AddCustomer("Ann", "ann@example.com", "Beginner")
	require.NoError(t, err)
	bob, err := c.AddCustomer("Bob", "bob@example.com", "Expert")
	require.NoError(t, err)
	cat, err := c.AddCustomer("Cat", "cat@example.com", "Intermediate")
	require.NoError(t, err)
	h1, err := c.AddAccommodation("Hotel", 100)
	require.NoError(t, err)
	h2, err := c.AddAccommodation("Hotel", 120)
	require.NoError(t, err)

	p1, err := c.CreatePackage(ann.ID, h1.ID, "now", 2)
	require.NoError(t, err)
	p2, err := c.CreatePackage(cat.ID, h2.ID, "now", 2)
	require.NoError(t, err)
	_, err = c.AttachLiftPass(p1.ID, "Season", 0)
	require.NoError(t, err)
	_, err = c.AttachLessons(p2.ID, 1)
	require.NoError(t, err)

	without := c.ListCustomersWithoutPackage()
	require.Len(t, without, 1)
	assert.Equal(t, bob.ID, without[0].ID)

	missingPass := c.ListPackagesMissingLiftPass()
	require.Len(t, missingPass, 1)
	assert.Equal(t, p2.ID, missingPass[0].ID)

	missingLessons := c.ListPackagesMissingLessons()
	require.Len(t, missingLessons, 1)
	assert.Equal(t, p1.ID, missingLessons[0].ID)
}

// ---- Seed ------------------------------------------------------------------

func TestSeed(t *testing.T) {
	c := newCatalog(t)

	require.NoError(t, catalog.Seed(c))

	inv := c.ListAccommodations()
	require.NotEmpty(t, inv)
	for i, a := range inv {
		assert.Equal(t, i+1, a.ID, "seed ids are sequential from 1")
		assert.True(t, a.Available)
		assert.True(t, a.Type.Valid())
	}

	// A second catalog seeded the same way has the same inventory.
	other := newCatalog(t)
	require.NoError(t, catalog.Seed(other))
	assert.Equal(t, inv, other.ListAccommodations())
}
