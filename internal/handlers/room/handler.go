package room

import (
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"hotel/infras/otel"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	availabilityDto "hotel/internal/domains/roomavailability/model/dto"
	availabilityService "hotel/internal/domains/roomavailability/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const amenitySeparator = ","

type Handler struct {
	service      service.Room
	availability availabilityService.RoomAvailability
	otel         otel.Otel
}

func New(service service.Room, availability availabilityService.RoomAvailability, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		availability: availability,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/available", handler.GetAvailableRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)

		routerGroup.Route("/{id}/availability", func(availability chi.Router) {
			availability.Get("/", handler.GetRoomAvailability)
			availability.Put("/", handler.SetRoomAvailability)
			availability.Patch("/{availabilityID}", handler.UpdateRoomAvailability)
			availability.Delete("/{availabilityID}", handler.DeleteRoomAvailability)
		})
	})
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)

	if failure.Is(err, http.StatusInternalServerError) {
		log.Error().Err(err).Msg(msg)
	}

	response.WithError(w, err)
}

// roomForm is the multipart body shared by create and update. Numeric fields are
// nil when the client left them out.
type roomForm struct {
	number, name, roomType, status, description string

	amenities []string
	price     *decimal.Decimal
	capacity  *int

	image     *multipart.FileHeader
	imageFile multipart.File
}

func parseRoomForm(r *http.Request) (form roomForm, err error) {
	if err = r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return form, failure.BadRequestf("invalid multipart form: %v", err) // nolint:wrapcheck
	}

	form = roomForm{
		number:      strings.TrimSpace(r.FormValue(model.FieldNumber)),
		name:        strings.TrimSpace(r.FormValue(model.FieldName)),
		roomType:    strings.TrimSpace(r.FormValue(model.FieldType)),
		status:      r.FormValue(model.FieldStatus),
		description: r.FormValue(model.FieldDescription),
		amenities:   splitAmenities(r.MultipartForm.Value[model.FieldAmenities]),
	}

	if raw := strings.TrimSpace(r.FormValue(model.FieldBasePrice)); raw != constant.Empty {
		price, err := decimal.NewFromString(raw)
		if err != nil || !price.IsPositive() {
			return form, failure.BadRequestFromString("base_price must be a positive number") // nolint:wrapcheck
		}

		form.price = &price
	}

	if raw := r.FormValue(model.FieldCapacity); raw != constant.Empty {
		capacity, err := shared.ParseInt(raw)
		if err != nil {
			return form, failure.BadRequestFromString("capacity must be a whole number") // nolint:wrapcheck
		}

		form.capacity = &capacity
	}

	if file, header, err := r.FormFile(model.FieldImage); err == nil {
		form.image, form.imageFile = header, file
	}

	return form, nil
}

func (f roomForm) close() {
	if f.imageFile != nil {
		f.imageFile.Close()
	}
}

// splitAmenities accepts repeated fields as well as a comma separated list.
func splitAmenities(values []string) []string {
	var amenities []string

	for _, value := range values {
		for _, amenity := range strings.Split(value, amenitySeparator) {
			if amenity = strings.TrimSpace(amenity); amenity != constant.Empty {
				amenities = append(amenities, amenity)
			}
		}
	}

	return amenities
}

// filterFromQuery supports ?name= (partial), ?type=, ?status= and ?capacity= (minimum guests).
func filterFromQuery(query url.Values) (gDto.FilterGroup, error) {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	add := func(field, operator string, value any) {
		group.Filters = append(group.Filters, gDto.Filter{Field: field, Operator: operator, Value: value, Table: model.TableName})
	}

	if name := query.Get(model.FieldName); name != constant.Empty {
		add(model.FieldName, gDto.FilterOperatorLike, name)
	}

	for _, field := range []string{model.FieldType, model.FieldStatus} {
		if value := query.Get(field); value != constant.Empty {
			add(field, gDto.FilterOperatorEq, value)
		}
	}

	if raw := query.Get(model.FieldCapacity); raw != constant.Empty {
		guests, err := shared.ParseInt(raw)
		if err != nil || guests < 1 {
			return group, failure.BadRequestFromString("capacity must be a positive whole number") // nolint:wrapcheck
		}

		add(model.FieldCapacity, gDto.FilterOperatorGreaterEq, guests)
	}

	return group, nil
}

// CreateRoom adds a room to the inventory.
// @Summary Create a room
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param number formData string true "Room number"
// @Param name formData string true "Room name"
// @Param type formData string true "Room type"
// @Param base_price formData number true "Base price per night"
// @Param capacity formData integer true "Maximum guests"
// @Param status formData string false "available, maintenance or unavailable"
// @Param description formData string false "Description"
// @Param amenities formData []string false "Amenities"
// @Param image formData file false "Cover image"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	form, err := parseRoomForm(r)
	if err != nil {
		fail(w, scope, err, "invalid room form")

		return
	}
	defer form.close()

	if form.price == nil {
		fail(w, scope, failure.BadRequestFromString("base_price is required"), "invalid room form")

		return
	}

	req := dto.CreateRoomRequest{
		Number:      form.number,
		Name:        form.name,
		Type:        form.roomType,
		BasePrice:   *form.price,
		Status:      form.status,
		Description: form.description,
		Amenities:   form.amenities,
		Image:       form.image,
		ImageFile:   form.imageFile,
	}

	if form.capacity != nil {
		req.Capacity = *form.capacity
	}

	if err := validator.ValidateStruct(&req); err != nil {
		fail(w, scope, err, "invalid room")

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		fail(w, scope, err, "failed to create room")

		return
	}

	response.WithMessage(w, http.StatusCreated, "Room created")
}

// GetRooms lists rooms. Public.
// @Summary List rooms
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination"
// @Param name query string false "Name contains"
// @Param type query string false "Room type"
// @Param status query string false "Status"
// @Param capacity query integer false "Minimum guests"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	var params gDto.QueryParams
	params.FromRequest(r, true)

	filter, err := filterFromQuery(r.URL.Query())
	if err != nil {
		fail(w, scope, err, "invalid room filter")

		return
	}

	rooms, err := handler.service.GetAll(ctx, params, filter)
	if err != nil {
		fail(w, scope, err, "failed to list rooms")

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetAvailableRooms lists rooms free for every night of a stay. Public.
// @Summary List rooms available for a stay
// @Tags Room
// @Produce json
// @Param check_in_date query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out_date query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/rooms/available [get]
func (handler *Handler) GetAvailableRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableRooms")
	defer scope.End()

	query := r.URL.Query()
	req := availabilityDto.AvailableRoomsRequest{
		CheckIn:  query.Get(constant.RequestParamCheckIn),
		CheckOut: query.Get(constant.RequestParamCheckOut),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		fail(w, scope, err, "invalid stay dates")

		return
	}

	rooms, err := handler.availability.AvailableRooms(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to list available rooms")

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID returns one room. Public.
// @Summary Get a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	room, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		fail(w, scope, err, "failed to get room")

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom changes any subset of a room's fields, optionally replacing its image.
// @Summary Update a room
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param name formData string false "Room name"
// @Param type formData string false "Room type"
// @Param base_price formData number false "Base price per night"
// @Param capacity formData integer false "Maximum guests"
// @Param status formData string false "available, maintenance or unavailable"
// @Param description formData string false "Description"
// @Param amenities formData []string false "Amenities"
// @Param image formData file false "Cover image"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	form, err := parseRoomForm(r)
	if err != nil {
		fail(w, scope, err, "invalid room form")

		return
	}
	defer form.close()

	req := dto.UpdateRoomRequest{
		Name:        form.name,
		Type:        form.roomType,
		BasePrice:   form.price,
		Capacity:    form.capacity,
		Status:      form.status,
		Description: form.description,
		Amenities:   form.amenities,
		Image:       form.image,
		ImageFile:   form.imageFile,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		fail(w, scope, err, "invalid room update")

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to update room")

		return
	}

	response.WithMessage(w, http.StatusOK, "Room updated")
}

// DeleteRoom removes a room that has no bookings.
// @Summary Delete a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to delete room")

		return
	}

	response.WithMessage(w, http.StatusOK, "Room deleted")
}
