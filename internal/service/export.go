package service

import (
	"context"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// PackageLister lists the catalog's packages. *catalog.Catalog satisfies it.
type PackageLister interface {
	ListPackages() []domain.TravelPackage
}

// ExportService builds the flat full-data export.
type ExportService struct {
	packages PackageLister
}

// NewExportService constructs an ExportService over the given catalog.
func NewExportService(packages PackageLister) *ExportService {
	return &ExportService{packages: packages}
}

// Export returns one ExportRow per package, in catalog order.
// Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pkgs := s.packages.ListPackages()
	rows := make([]domain.ExportRow, 0, len(pkgs))
	for _, p := range pkgs {
		row := domain.ExportRow{
			PackageID:         p.ID.String(),
			StartDate:         p.StartDate.Format(domain.DateLayout),
			EndDate:           p.EndDate().Format(domain.DateLayout),
			Days:              p.Days,
			CustomerID:        p.Customer.ID.String(),
			CustomerName:      p.Customer.Name,
			CustomerEmail:     p.Customer.Email,
			SkillLevel:        string(p.Customer.SkillLevel),
			AccommodationID:   p.Accommodation.ID,
			AccommodationType: string(p.Accommodation.Type),
			NightlyPrice:      p.Accommodation.Price,
			AccommodationCost: p.AccommodationCost(),
		}
		if p.LiftPass != nil {
			row.LiftPassKind = string(p.LiftPass.Kind)
			row.LiftPassDays = p.LiftPass.Days
		}
		if p.Lessons != nil {
			row.LessonCount = p.Lessons.Count
			row.LessonLevel = string(p.Lessons.SkillLevel)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
