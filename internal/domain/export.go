package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per package, with the customer,
// accommodation and extras columns inlined. Extras that are not attached
// leave their columns at zero values.
type ExportRow struct {
	// Package fields.
	PackageID string
	StartDate string // "2006-01-02" formatted date
	EndDate   string // "2006-01-02" formatted date
	Days      int

	// Customer fields.
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	SkillLevel    string

	// Accommodation fields.
	AccommodationID   int
	AccommodationType string
	NightlyPrice      float64
	AccommodationCost float64

	// Extras. LiftPassKind is empty when no pass is attached;
	// LessonCount is 0 when no lessons are attached.
	LiftPassKind string
	LiftPassDays int
	LessonCount  int
	LessonLevel  string
}
