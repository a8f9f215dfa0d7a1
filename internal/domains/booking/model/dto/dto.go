package dto

import (
	"strings"
	"time"

	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/pricing"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const codeLength = 13

type CreateBookingRequest struct {
	RoomID           string `json:"room_id"           validate:"required,uuid"`
	CheckIn          string `json:"check_in_date"     validate:"required,dateonly"`
	CheckOut         string `json:"check_out_date"    validate:"required,dateonly"`
	Adults           int    `json:"adults"            validate:"required,gte=1,lte=10"`
	Children         int    `json:"children"          validate:"gte=0,lte=10"`
	PaymentMethod    string `json:"payment_method"    validate:"omitempty,oneof=credit_card debit_card mobile_payment online_banking"`
	SpecialRequests  string `json:"special_requests"  validate:"omitempty,max=1000"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,max=100"`
	EmergencyPhone   string `json:"emergency_phone"   validate:"omitempty,phone"`
}

// CreateGuestBookingRequest books a stay for someone without an account. The booking is
// attached to the guest account registered under GuestEmail, which is opened when missing.
type CreateGuestBookingRequest struct {
	CreateBookingRequest
	GuestName  string `json:"guest_name"  validate:"required,max=255"`
	GuestEmail string `json:"guest_email" validate:"required,email,max=255"`
	GuestPhone string `json:"guest_phone" validate:"required,phone"`
}

func (r *CreateGuestBookingRequest) ToUserModel(hashedPassword string, now time.Time) userModel.User {
	phone := strings.TrimSpace(r.GuestPhone)

	return userModel.User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.GuestName),
		Email:    userModel.NormalizeEmail(r.GuestEmail),
		Phone:    &phone,
		Password: hashedPassword,
		Role:     constant.RoleGuest,
		Active:   true,
		Metadata: gModel.NewMetadata(constant.ContextGuest, now),
	}
}

// ParseStay parses the requested dates as calendar days in the application timezone.
func ParseStay(rawCheckIn, rawCheckOut string) (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.Parse(constant.DateOnlyFormat, rawCheckIn)
	if err != nil {
		return checkIn, checkOut, err //nolint:wrapcheck
	}

	checkOut, err = timezone.Parse(constant.DateOnlyFormat, rawCheckOut)

	return checkIn, checkOut, err //nolint:wrapcheck
}

func (c *CreateBookingRequest) ToModel(user string, checkIn, checkOut time.Time, total decimal.Decimal, now time.Time) model.Booking {
	paymentMethod := c.PaymentMethod
	if paymentMethod == constant.Empty {
		paymentMethod = model.PaymentMethodCreditCard
	}

	return model.Booking{
		ID:               uuid.NewString(),
		Code:             NewCode(),
		UserID:           user,
		RoomID:           c.RoomID,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Nights:           model.NightsBetween(checkIn, checkOut),
		Adults:           c.Adults,
		Children:         c.Children,
		TotalAmount:      total,
		Status:           model.StatusPending,
		PaymentMethod:    paymentMethod,
		PaymentStatus:    model.PaymentStatusPending,
		SpecialRequests:  c.SpecialRequests,
		EmergencyContact: c.EmergencyContact,
		EmergencyPhone:   c.EmergencyPhone,
		Version:          1,
		Metadata:         gModel.NewMetadata(user, now),
	}
}

// NewCode returns a booking code: the prefix followed by 13 upper-case hex characters.
func NewCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", constant.Empty)

	return model.CodePrefix + strings.ToUpper(raw[:codeLength])
}

type QuoteRequest struct {
	RoomID   string `json:"room_id"        validate:"required,uuid"`
	CheckIn  string `json:"check_in_date"  validate:"required,dateonly"`
	CheckOut string `json:"check_out_date" validate:"required,dateonly"`
}

type QuoteResponse struct {
	RoomID   string          `json:"room_id"`
	CheckIn  string          `json:"check_in_date"`
	CheckOut string          `json:"check_out_date"`
	Nights   []pricing.Night `json:"nights"`
	Total    decimal.Decimal `json:"total_amount"`
}

type UpdateBookingRequest struct {
	Status           string `db:"status"            json:"status"            validate:"omitempty,oneof=pending confirmed checked_in checked_out cancelled"`
	SpecialRequests  string `db:"special_requests"  json:"special_requests"  validate:"omitempty,max=1000"`
	EmergencyContact string `db:"emergency_contact" json:"emergency_contact" validate:"omitempty,max=100"`
	EmergencyPhone   string `db:"emergency_phone"   json:"emergency_phone"   validate:"omitempty,phone"`
}

type BookingResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"booking_code"`
	UserID           string          `json:"user_id"`
	RoomID           string          `json:"room_id"`
	CheckIn          string          `json:"check_in_date"`
	CheckOut         string          `json:"check_out_date"`
	Nights           int             `json:"nights"`
	Adults           int             `json:"adults"`
	Children         int             `json:"children"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Status           string          `json:"status"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentStatus    string          `json:"payment_status"`
	SpecialRequests  string          `json:"special_requests"`
	EmergencyContact string          `json:"emergency_contact"`
	EmergencyPhone   string          `json:"emergency_phone"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Code = model.Code
	r.UserID = model.UserID
	r.RoomID = model.RoomID
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = model.CheckOut.Format(constant.DateOnlyFormat)
	r.Nights = model.Nights
	r.Adults = model.Adults
	r.Children = model.Children
	r.TotalAmount = model.TotalAmount
	r.Status = model.Status
	r.PaymentMethod = model.PaymentMethod
	r.PaymentStatus = model.PaymentStatus
	r.SpecialRequests = model.SpecialRequests
	r.EmergencyContact = model.EmergencyContact
	r.EmergencyPhone = model.EmergencyPhone
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
