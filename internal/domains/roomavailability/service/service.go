package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepository "hotel/internal/domains/room/repository"
	"hotel/internal/domains/roomavailability/model"
	"hotel/internal/domains/roomavailability/model/dto"
	"hotel/internal/domains/roomavailability/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/transaction"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	argStayCheckIn  = "stay_check_in"
	argStayCheckOut = "stay_check_out"

	notBlockedQuery = "NOT EXISTS (SELECT 1 FROM %s blocked WHERE blocked.%s = %s.%s AND blocked.%s = '%s' " +
		"AND blocked.%s >= :" + argStayCheckIn + " AND blocked.%s < :" + argStayCheckOut + ")"
	notBookedQuery = "NOT EXISTS (SELECT 1 FROM %s held WHERE held.%s = %s.%s AND held.%s IN (%s) " +
		"AND held.%s < :" + argStayCheckOut + " AND held.%s > :" + argStayCheckIn + ")"
)

var errAvailabilityNotFound = failure.NotFound("room availability not found")

// RoomAvailability keeps the per-day blocks of each room and answers which rooms are free for a stay.
type RoomAvailability interface {
	GetByRoom(ctx context.Context, roomID string) (dto.GetAvailabilitiesResponse, error)
	Replace(ctx context.Context, roomID string, req dto.SetAvailabilityRequest) (dto.GetAvailabilitiesResponse, error)
	Update(ctx context.Context, roomID, id string, req dto.UpdateAvailabilityRequest) (dto.AvailabilityResponse, error)
	Delete(ctx context.Context, roomID, id string) error
	AvailableRooms(ctx context.Context, req dto.AvailableRoomsRequest) (roomDto.GetRoomsResponse, error)
	// BlockedTx reports whether a night in [checkIn, checkOut) of roomID is blocked.
	BlockedTx(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) (bool, error)
}

type serviceImpl struct {
	repo       repository.RoomAvailability
	roomRepo   roomRepository.Room
	transactor transaction.Transactor
	otel       otel.Otel
}

func New(repo repository.RoomAvailability, roomRepo roomRepository.Room, transactor transaction.Transactor, otel otel.Otel) RoomAvailability {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		transactor: transactor,
		otel:       otel,
	}
}

func byRoom(roomID string) gDto.FilterGroup {
	return shared.FilterByID(roomID, model.FieldRoomID, model.TableName)
}

func byRoomAndID(roomID, id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: id, Table: model.TableName},
			gDto.Filter{Field: model.FieldRoomID, Operator: gDto.FilterOperatorEq, Value: roomID, Table: model.TableName},
		},
	}
}

func (s *serviceImpl) GetByRoom(ctx context.Context, roomID string) (res dto.GetAvailabilitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room_availability.GetByRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldDate, SortDir: gDto.SortDirAsc}

	entries, err := s.repo.GetAll(ctx, params, byRoom(roomID))
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to get room availability")

		return res, fmt.Errorf("failed to get room availability: %w", err)
	}

	res.FromModels(entries)

	return res, nil
}

// Replace drops every dated entry of the room and stores req instead. The room row is locked,
// so a booking being created for the room waits until the new blocks are visible.
func (s *serviceImpl) Replace(ctx context.Context, roomID string, req dto.SetAvailabilityRequest) (res dto.GetAvailabilitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room_availability.Replace")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.CurrentUser(ctx)
	entries := req.ToModels(roomID, user, timezone.Now())

	if err = checkEntries(entries); err != nil {
		return res, err
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.lockRoom(ctx, tx, roomID); err != nil {
			return err
		}

		if err := s.repo.DeleteTx(ctx, tx, byRoom(roomID)); err != nil {
			log.Error().Err(err).Str("room_id", roomID).Msg("failed to clear room availability")

			return fmt.Errorf("failed to clear room availability: %w", err)
		}

		for _, entry := range entries {
			if err := s.repo.InsertTx(ctx, tx, entry); err != nil {
				log.Error().Err(err).Str("room_id", roomID).Msg("failed to store room availability")

				return fmt.Errorf("failed to store room availability: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModels(entries)

	return res, nil
}

// checkEntries rejects unknown statuses and a date given twice.
func checkEntries(entries []model.RoomAvailability) error {
	seen := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		if !dto.ValidStatus(entry.Status) {
			return failure.BadRequestf("unknown availability status %q", entry.Status) // nolint:wrapcheck
		}

		day := entry.Date.Format(constant.DateOnlyFormat)
		if _, dup := seen[day]; dup {
			return failure.BadRequestf("date %s is listed more than once", day) // nolint:wrapcheck
		}

		seen[day] = struct{}{}
	}

	return nil
}

func (s *serviceImpl) lockRoom(ctx context.Context, tx *sqlx.Tx, roomID string) error {
	room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName), roomModel.FieldID)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to lock room")

		return fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Update(ctx context.Context, roomID, id string, req dto.UpdateAvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room_availability.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.CurrentUser(ctx)
	now := timezone.Now()

	status := dto.NormalizeStatus(req.Status)
	if !dto.ValidStatus(status) {
		return res, failure.BadRequestf("unknown availability status %q", req.Status) // nolint:wrapcheck
	}

	date, err := time.Parse(constant.DateOnlyFormat, req.Date)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	var entry model.RoomAvailability

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.lockRoom(ctx, tx, roomID); err != nil {
			return err
		}

		filter := byRoomAndID(roomID, id)

		entry, err = s.repo.GetTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to get room availability")

			return fmt.Errorf("failed to get room availability: %w", err)
		}

		if entry.ID == constant.Empty {
			return errAvailabilityNotFound
		}

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldDate:          date,
			model.FieldStatus:        status,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, filter)
		if err != nil {
			if shared.IsUniqueViolation(err) {
				return failure.Conflict("room already has an entry for that date") // nolint:wrapcheck
			}

			log.Error().Err(err).Str("id", id).Msg("failed to update room availability")

			return fmt.Errorf("failed to update room availability: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	entry.Date = date
	entry.Status = status
	entry.ModifiedAt = now
	entry.ModifiedBy = user

	res.FromModel(entry)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, roomID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room_availability.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := byRoomAndID(roomID, id)

	entry, err := s.repo.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get room availability")

		return fmt.Errorf("failed to get room availability: %w", err)
	}

	if entry.ID == constant.Empty {
		return errAvailabilityNotFound
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete room availability")

		return fmt.Errorf("failed to delete room availability: %w", err)
	}

	return nil
}

// AvailableRooms lists bookable rooms with no blocked night and no active booking in the stay.
func (s *serviceImpl) AvailableRooms(ctx context.Context, req dto.AvailableRoomsRequest) (res roomDto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room_availability.AvailableRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := bookingDto.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequest(bookingModel.ErrInvalidStay) // nolint:wrapcheck
	}

	params := gDto.QueryParams{SortBy: roomModel.TableName + "." + roomModel.FieldNumber, SortDir: gDto.SortDirAsc}

	rooms, err := s.roomRepo.GetAll(ctx, params, freeRoomsFilter(checkIn, checkOut))
	if err != nil {
		log.Error().Err(err).Msg("failed to get available rooms")

		return res, fmt.Errorf("failed to get available rooms: %w", err)
	}

	res.FromModels(rooms, len(rooms), 0)

	return res, nil
}

func stayArgs(checkIn, checkOut time.Time) map[string]any {
	return map[string]any{
		argStayCheckIn:  checkIn.Format(constant.DateOnlyFormat),
		argStayCheckOut: checkOut.Format(constant.DateOnlyFormat),
	}
}

func freeRoomsFilter(checkIn, checkOut time.Time) gDto.FilterGroup {
	active := make([]string, len(bookingModel.ActiveStatuses))
	for i, status := range bookingModel.ActiveStatuses {
		active[i] = "'" + status + "'"
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    roomModel.StatusAvailable,
				Table:    roomModel.TableName,
			},
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value: fmt.Sprintf(notBlockedQuery,
					model.TableName, model.FieldRoomID, roomModel.TableName, roomModel.FieldID,
					model.FieldStatus, model.StatusBlocked, model.FieldDate, model.FieldDate),
				Args: stayArgs(checkIn, checkOut),
			},
			// stays are half-open: a check-out on the requested check-in day does not clash
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value: fmt.Sprintf(notBookedQuery,
					bookingModel.TableName, bookingModel.FieldRoomID, roomModel.TableName, roomModel.FieldID,
					bookingModel.FieldStatus, strings.Join(active, ", "), bookingModel.FieldCheckIn, bookingModel.FieldCheckOut),
				Args: stayArgs(checkIn, checkOut),
			},
		},
	}
}

func (s *serviceImpl) BlockedTx(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) (blocked bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room_availability.BlockedTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Operator: gDto.FilterOperatorEq, Value: roomID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusBlocked, Table: model.TableName},
			gDto.Filter{
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    checkIn.Format(constant.DateOnlyFormat),
				Table:    model.TableName,
				ArgName:  argStayCheckIn,
			},
			gDto.Filter{
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorLess,
				Value:    checkOut.Format(constant.DateOnlyFormat),
				Table:    model.TableName,
				ArgName:  argStayCheckOut,
			},
		},
	}

	entry, err := s.repo.GetTx(ctx, tx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to check blocked dates")

		return false, fmt.Errorf("failed to check blocked dates: %w", err)
	}

	return entry.ID != constant.Empty, nil
}
