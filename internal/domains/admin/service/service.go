package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/infras/otel"
	"hotel/internal/domains/admin/model/dto"
	"hotel/internal/domains/admin/repository"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/jinzhu/now"
	"github.com/rs/zerolog/log"
)

const (
	upcomingDays   = 7
	maxExportRange = 366 * 24 * time.Hour
)

type Admin interface {
	Dashboard(ctx context.Context) (dto.DashboardResponse, error)
	ExportBookings(ctx context.Context, req dto.ExportRequest) (content []byte, filename string, err error)
}

type serviceImpl struct {
	repo repository.Admin
	otel otel.Otel
}

func New(repo repository.Admin, otel otel.Otel) Admin {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Dashboard(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Dashboard")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current := now.With(timezone.Now())
	today := current.BeginningOfDay()

	totals, err := s.repo.RoomTotals(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room totals")

		return res, fmt.Errorf("failed to get room totals: %w", err)
	}

	occupied, err := s.repo.OccupiedRooms(ctx, today)
	if err != nil {
		log.Error().Err(err).Msg("failed to count occupied rooms")

		return res, fmt.Errorf("failed to count occupied rooms: %w", err)
	}

	res.Occupancy = dto.OccupancyFrom(totals, occupied)

	monthStart := current.BeginningOfMonth()
	nextMonth := monthStart.AddDate(0, 1, 0)

	res.MonthlyRevenue, err = s.repo.Revenue(ctx, monthStart, nextMonth)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum monthly revenue")

		return res, fmt.Errorf("failed to sum monthly revenue: %w", err)
	}

	res.MonthlyRevenue = res.MonthlyRevenue.Round(2)
	res.RevenueMonth = monthStart.Format("2006-01")

	counts, err := s.repo.BookingStatusCounts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings by status")

		return res, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	res.SetStatusCounts(counts)

	rate, err := s.repo.AverageRoomRate(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get average room rate")

		return res, fmt.Errorf("failed to get average room rate: %w", err)
	}

	res.AverageRoomRate = rate.Round(2)

	horizon := today.AddDate(0, 0, upcomingDays)

	checkIns, err := s.repo.UpcomingCheckIns(ctx, today, horizon)
	if err != nil {
		log.Error().Err(err).Msg("failed to list upcoming check-ins")

		return res, fmt.Errorf("failed to list upcoming check-ins: %w", err)
	}

	checkOuts, err := s.repo.UpcomingCheckOuts(ctx, today, horizon)
	if err != nil {
		log.Error().Err(err).Msg("failed to list upcoming check-outs")

		return res, fmt.Errorf("failed to list upcoming check-outs: %w", err)
	}

	res.UpcomingCheckIns = dto.StaysFrom(checkIns)
	res.UpcomingCheckOuts = dto.StaysFrom(checkOuts)

	return res, nil
}

// ExportBookings renders bookings created between From and To inclusive.
// With neither set the current month is exported; with one set the window spans one month from it.
func (s *serviceImpl) ExportBookings(ctx context.Context, req dto.ExportRequest) (content []byte, filename string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.ExportBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, to, err := exportRange(req)
	if err != nil {
		return nil, constant.Empty, err
	}

	rows, err := s.repo.ExportRows(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to load bookings for export")

		return nil, constant.Empty, fmt.Errorf("failed to load bookings for export: %w", err)
	}

	content, err = renderBookings(rows)
	if err != nil {
		log.Error().Err(err).Msg("failed to render bookings export")

		return nil, constant.Empty, err
	}

	filename = fmt.Sprintf("bookings_%s_%s.xlsx",
		from.Format(constant.DateOnlyFormat), to.AddDate(0, 0, -1).Format(constant.DateOnlyFormat))

	log.Info().Int("rows", len(rows)).Str("file", filename).Msg("bookings exported")

	return content, filename, nil
}

// exportRange returns the half-open window [from, to+1 day).
func exportRange(req dto.ExportRequest) (from, to time.Time, err error) {
	month := now.With(timezone.Now())
	from = month.BeginningOfMonth()
	to = month.BeginningOfMonth().AddDate(0, 1, 0)

	if req.From != constant.Empty {
		if from, err = timezone.Parse(constant.DateOnlyFormat, req.From); err != nil {
			return from, to, failure.BadRequestFromString("from must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
		}
	}

	if req.To != constant.Empty {
		last, err := timezone.Parse(constant.DateOnlyFormat, req.To)
		if err != nil {
			return from, to, failure.BadRequestFromString("to must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
		}

		to = last.AddDate(0, 0, 1)
	}

	switch {
	case req.From != constant.Empty && req.To == constant.Empty:
		to = from.AddDate(0, 1, 0)
	case req.From == constant.Empty && req.To != constant.Empty:
		from = to.AddDate(0, -1, 0)
	}

	if !to.After(from) {
		return from, to, failure.BadRequestFromString("from must not be after to") // nolint:wrapcheck
	}

	if to.Sub(from) > maxExportRange {
		return from, to, failure.BadRequestFromString("export range must not exceed one year") // nolint:wrapcheck
	}

	return from, to, nil
}
