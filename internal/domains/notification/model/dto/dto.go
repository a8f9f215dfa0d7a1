package dto

import (
	"hotel/internal/domains/notification/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
)

type NotificationResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	BookingID *string           `json:"booking_id,omitempty"`
	Channel   string            `json:"channel"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Status    string            `json:"status"`
	Target    map[string]string `json:"metadata"`
	SentAt    *string           `json:"sent_at,omitempty"`
	gDto.Metadata
}

func (r *NotificationResponse) FromModel(model model.Notification) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.BookingID = model.BookingID
	r.Channel = model.Channel
	r.Title = model.Title
	r.Message = model.Message
	r.Status = model.Status
	r.Target = map[string]string{}

	if len(model.Target) > 0 {
		_ = model.Target.Unmarshal(&r.Target)
	}

	if model.SentAt != nil {
		sentAt := model.SentAt.Format(constant.DateFormat)
		r.SentAt = &sentAt
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Notifications = make([]NotificationResponse, len(models))
	for i, mod := range models {
		r.Notifications[i].FromModel(mod)
	}
}
