package handlers

import (
	"sharebox/internal/models"
	"sharebox/internal/services"
)

type itemResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *uint  `json:"requestId,omitempty"`
}

func newItemResponse(item models.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
	}
}

type commentResponse struct {
	ID         uint            `json:"id"`
	AuthorName string          `json:"authorName"`
	Text       string          `json:"text"`
	Created    models.DateTime `json:"created"`
}

func newCommentResponse(comment models.Comment) commentResponse {
	return commentResponse{
		ID:         comment.ID,
		AuthorName: comment.User.Name,
		Text:       comment.Text,
		Created:    models.NewDateTime(comment.Created),
	}
}

type itemBookingsResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	Comments    []commentResponse `json:"comments"`
	LastBooking *models.DateTime  `json:"lastBooking"`
	NextBooking *models.DateTime  `json:"nextBooking"`
}

func newItemBookingsResponse(ib services.ItemBookings) itemBookingsResponse {
	comments := make([]commentResponse, 0, len(ib.Comments))
	for _, c := range ib.Comments {
		comments = append(comments, newCommentResponse(c))
	}
	resp := itemBookingsResponse{
		ID:          ib.Item.ID,
		Name:        ib.Item.Name,
		Description: ib.Item.Description,
		Available:   ib.Item.Available,
		Comments:    comments,
	}
	if ib.LastBooking != nil {
		dt := models.NewDateTime(*ib.LastBooking)
		resp.LastBooking = &dt
	}
	if ib.NextBooking != nil {
		dt := models.NewDateTime(*ib.NextBooking)
		resp.NextBooking = &dt
	}
	return resp
}

type bookingResponse struct {
	ID     uint                 `json:"id"`
	Booker models.User          `json:"booker"`
	Item   itemResponse         `json:"item"`
	Start  models.DateTime      `json:"start"`
	End    models.DateTime      `json:"end"`
	Status models.BookingStatus `json:"status"`
}

func newBookingResponse(booking models.Booking) bookingResponse {
	return bookingResponse{
		ID:     booking.ID,
		Booker: booking.User,
		Item:   newItemResponse(booking.Item),
		Start:  models.NewDateTime(booking.Start),
		End:    models.NewDateTime(booking.End),
		Status: booking.Status,
	}
}

func newBookingResponses(bookings []models.Booking) []bookingResponse {
	responses := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, newBookingResponse(b))
	}
	return responses
}

type requestItemResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	OwnerID uint   `json:"ownerId"`
}

type requestResponse struct {
	ID          uint                  `json:"id"`
	Description string                `json:"description"`
	Created     models.DateTime       `json:"created"`
	Items       []requestItemResponse `json:"items,omitempty"`
}

func newRequestResponse(request models.ItemRequest, items []models.Item) requestResponse {
	resp := requestResponse{
		ID:          request.ID,
		Description: request.Description,
		Created:     models.NewDateTime(request.Created),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, requestItemResponse{
			ID:      item.ID,
			Name:    item.Name,
			OwnerID: item.UserID,
		})
	}
	return resp
}
