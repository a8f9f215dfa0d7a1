package gallery

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/gallery/model"
	"hotel/internal/domains/gallery/model/dto"
	"hotel/internal/domains/gallery/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateImage)
		routerGroup.Get("/", handler.GetImages)
		routerGroup.Get("/featured", handler.GetFeaturedImages)
		routerGroup.Put("/reorder", handler.ReorderImages)
		routerGroup.Get("/{id}", handler.GetImageByID)
		routerGroup.Patch("/{id}", handler.UpdateImage)
		routerGroup.Patch("/{id}/featured", handler.ToggleFeatured)
		routerGroup.Patch("/{id}/active", handler.ToggleActive)
		routerGroup.Delete("/{id}", handler.DeleteImage)
	})
}

func formSortOrder(request *http.Request) (*int, error) {
	raw := request.FormValue(model.FieldSortOrder)
	if raw == constant.Empty {
		return nil, nil
	}

	order, err := shared.ParseInt(raw)
	if err != nil {
		return nil, failure.BadRequestFromString("sort_order must be a number") // nolint:wrapcheck
	}

	return &order, nil
}

// CreateImage uploads a new hotel image.
// @Summary Upload a hotel image
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param category formData string true "rooms, dining, facilities, exterior, events or other"
// @Param description formData string false "Description"
// @Param alt_text formData string false "Alt text"
// @Param sort_order formData integer false "Sort order"
// @Param is_featured formData boolean false "Featured"
// @Param image formData file true "Image"
// @Success 201 {object} response.Data[dto.ImageResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery [post]
// @Security BearerAuth
func (handler *Handler) CreateImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateImage")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateImageRequest{
		Title:       request.FormValue(model.FieldTitle),
		Description: request.FormValue(model.FieldDescription),
		Category:    request.FormValue(model.FieldCategory),
		AltText:     request.FormValue(model.FieldAltText),
	}

	if featured := shared.ParseOptionalBool(request.FormValue(model.FieldFeatured)); featured != nil {
		req.Featured = *featured
	}

	order, err := formSortOrder(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if order != nil {
		req.SortOrder = *order
	}

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	image, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create hotel image")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Hotel image created " + image.ID)

	response.WithJSON(writer, http.StatusCreated, image)
}

// GetImages lists hotel images. Inactive images are only listed for staff.
// @Summary List hotel images
// @Tags Gallery
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category query string false "Category"
// @Param is_featured query boolean false "Featured only"
// @Param is_active query boolean false "Active flag (staff only)"
// @Success 200 {object} response.Data[dto.GetImagesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/gallery [get]
func (handler *Handler) GetImages(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	if queryParams.SortBy == constant.Empty {
		queryParams.SortBy = model.FieldSortOrder
		queryParams.SortDir = gDto.SortDirAsc
	}

	query := request.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if category := query.Get(model.FieldCategory); category != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    category,
			Table:    model.TableName,
		})
	}

	if featured := shared.ParseOptionalBool(query.Get(model.FieldFeatured)); featured != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldFeatured,
			Operator: gDto.FilterOperatorEq,
			Value:    *featured,
			Table:    model.TableName,
		})
	}

	active := shared.ParseOptionalBool(query.Get(model.FieldActive))
	if _, role := shared.CurrentUser(ctx); !shared.IsStaff(role) {
		visible := true
		active = &visible
	}

	if active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	images, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotel images")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, images)
}

// GetFeaturedImages lists active featured images in display order.
// @Summary List featured hotel images
// @Tags Gallery
// @Produce json
// @Success 200 {object} response.Data[dto.GetImagesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/gallery/featured [get]
func (handler *Handler) GetFeaturedImages(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeaturedImages")
	defer scope.End()

	images, err := handler.service.GetFeatured(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get featured hotel images")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, images)
}

// GetImageByID retrieves a hotel image.
// @Summary Get a hotel image
// @Tags Gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Data[dto.ImageResponse]
// @Failure 404 {object} response.Error
// @Router /v1/gallery/{id} [get]
func (handler *Handler) GetImageByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImageByID")
	defer scope.End()

	image, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotel image")

		response.WithError(writer, err)

		return
	}

	if _, role := shared.CurrentUser(ctx); !image.Active && !shared.IsStaff(role) {
		response.WithError(writer, failure.NotFound("hotel image not found"))

		return
	}

	response.WithJSON(writer, http.StatusOK, image)
}

// UpdateImage updates image details and optionally replaces the file.
// @Summary Update a hotel image
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Image ID"
// @Param title formData string false "Title"
// @Param category formData string false "Category"
// @Param description formData string false "Description"
// @Param alt_text formData string false "Alt text"
// @Param sort_order formData integer false "Sort order"
// @Param image formData file false "Replacement image"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/gallery/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateImage")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateImageRequest{
		Title:       request.FormValue(model.FieldTitle),
		Description: request.FormValue(model.FieldDescription),
		Category:    request.FormValue(model.FieldCategory),
		AltText:     request.FormValue(model.FieldAltText),
	}

	order, err := formSortOrder(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req.SortOrder = order

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update hotel image")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Hotel image updated successfully")
}

// ToggleFeatured flips the featured flag.
// @Summary Toggle featured
// @Tags Gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Data[dto.ImageResponse]
// @Failure 404 {object} response.Error
// @Router /v1/gallery/{id}/featured [patch]
// @Security BearerAuth
func (handler *Handler) ToggleFeatured(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleFeatured")
	defer scope.End()

	image, err := handler.service.ToggleFeatured(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle featured")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, image)
}

// ToggleActive flips the active flag.
// @Summary Toggle active
// @Tags Gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Data[dto.ImageResponse]
// @Failure 404 {object} response.Error
// @Router /v1/gallery/{id}/active [patch]
// @Security BearerAuth
func (handler *Handler) ToggleActive(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleActive")
	defer scope.End()

	image, err := handler.service.ToggleActive(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle active")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, image)
}

// ReorderImages sets the sort order of several images at once.
// @Summary Reorder hotel images
// @Tags Gallery
// @Accept json
// @Produce json
// @Param request body dto.ReorderRequest true "New order"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/gallery/reorder [put]
// @Security BearerAuth
func (handler *Handler) ReorderImages(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReorderImages")
	defer scope.End()

	req := dto.ReorderRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Reorder(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reorder hotel images")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Hotel images reordered successfully")
}

// DeleteImage deletes a hotel image and its stored file.
// @Summary Delete a hotel image
// @Tags Gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/gallery/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete hotel image")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Hotel image deleted successfully")
}
