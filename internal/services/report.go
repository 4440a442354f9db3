package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reporter computes the dashboard aggregates over the sales ledger. Nothing
// is cached; every call recomputes from the store.
type Reporter struct {
	db *gorm.DB
}

func NewReporter(db *gorm.DB) *Reporter { return &Reporter{db: db} }

type MonthlyPoint struct {
	Month   time.Time // first day of the month
	Label   string    // "January 2006"
	Revenue decimal.Decimal
}

type CategorySlice struct {
	Name         string
	ProductCount int64
}

type Summary struct {
	TotalProducts   int64
	TotalCategories int64
	TotalUnitsSold  int64
	TotalRevenue    decimal.Decimal
	TodayRevenue    decimal.Decimal
	WeeklyRevenue   decimal.Decimal
	MonthlyRevenue  decimal.Decimal
	MonthlyReport   []MonthlyPoint
	Categories      []CategorySlice
}

// Summary computes all dashboard figures relative to now. Revenue sums carry
// full precision; rounding to two decimals happens only in MonthlyReport
// labels and at presentation time.
func (r *Reporter) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	s := &Summary{}

	if err := r.db.WithContext(ctx).Table("products").Count(&s.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Table("categories").Count(&s.TotalCategories).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Table("sales").
		Select("COALESCE(SUM(quantity_sold), 0)").
		Row().Scan(&s.TotalUnitsSold); err != nil {
		return nil, err
	}

	var err error
	if s.TotalRevenue, err = r.revenueBetween(ctx, nil, nil); err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	if s.TodayRevenue, err = r.revenueBetween(ctx, &dayStart, &dayEnd); err != nil {
		return nil, err
	}

	weekStart := now.AddDate(0, 0, -7)
	if s.WeeklyRevenue, err = r.revenueBetween(ctx, &weekStart, nil); err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	if s.MonthlyRevenue, err = r.revenueBetween(ctx, &monthStart, &monthEnd); err != nil {
		return nil, err
	}

	if s.MonthlyReport, err = r.monthlyReport(ctx); err != nil {
		return nil, err
	}
	if s.Categories, err = r.categoryDistribution(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// revenueBetween sums quantity_sold * price over sales joined to products,
// optionally bounded by the half-open interval [from, to).
func (r *Reporter) revenueBetween(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Table("sales").
		Joins("JOIN products ON products.id = sales.product_id").
		Select("COALESCE(SUM(sales.quantity_sold * products.price), 0)")
	if from != nil {
		q = q.Where("sales.sale_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("sales.sale_date < ?", *to)
	}
	var total decimal.Decimal
	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// monthlyReport groups sales by calendar month, ascending. The grouping runs
// in Go over a single joined scan so postgres and sqlite behave identically
// (date_trunc vs strftime would otherwise diverge). Months without sales
// produce no point.
func (r *Reporter) monthlyReport(ctx context.Context) ([]MonthlyPoint, error) {
	var rows []struct {
		SaleDate     time.Time
		QuantitySold int
		Price        decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("sales").
		Joins("JOIN products ON products.id = sales.product_id").
		Select("sales.sale_date, sales.quantity_sold, products.price").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	byMonth := map[time.Time]decimal.Decimal{}
	for _, row := range rows {
		month := time.Date(row.SaleDate.Year(), row.SaleDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		rev := row.Price.Mul(decimal.NewFromInt(int64(row.QuantitySold)))
		byMonth[month] = byMonth[month].Add(rev)
	}

	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	points := make([]MonthlyPoint, 0, len(months))
	for _, m := range months {
		points = append(points, MonthlyPoint{
			Month:   m,
			Label:   m.Format("January 2006"),
			Revenue: byMonth[m].Round(2),
		})
	}
	return points, nil
}

// categoryDistribution counts products per category for the pie chart.
func (r *Reporter) categoryDistribution(ctx context.Context) ([]CategorySlice, error) {
	var slices []CategorySlice
	err := r.db.WithContext(ctx).Table("categories").
		Select("categories.name AS name, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scan(&slices).Error
	if err != nil {
		return nil, err
	}
	return slices, nil
}
