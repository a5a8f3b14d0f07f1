package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/pricing"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

const dateLayout = "2006-01-02"

var errBadQuery = errors.New("bad query parameter")

// CurrentUser extracts the authenticated user profile from context.
func CurrentUser(c *gin.Context) model.UserProfile {
	profile, _ := middleware.Profile(c)
	return profile
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrAlreadyExists), errors.Is(err, domainErrors.ErrSubmissionInProgress):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidStatus),
		errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrInvalidProfile),
		errors.Is(err, domainErrors.ErrInvalidCredentials),
		errors.Is(err, domainErrors.ErrUnknownChannel),
		errors.Is(err, errBadQuery):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrEmptyCart), errors.Is(err, domainErrors.ErrChannelUnavailable):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatus(status)
		return
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: err.Error()})
}

// orderFilter reads status, since, until, limit and offset query parameters.
// Dates are accepted as RFC 3339 timestamps or plain days.
func orderFilter(c *gin.Context) (model.OrderFilter, error) {
	filter := model.OrderFilter{Status: model.OrderStatus(c.Query("status"))}

	var err error
	if filter.Since, err = parseTime(c.Query("since"), false); err != nil {
		return filter, err
	}
	if filter.Until, err = parseTime(c.Query("until"), true); err != nil {
		return filter, err
	}
	if filter.Limit, err = parseInt(c.Query("limit")); err != nil {
		return filter, err
	}
	if filter.Offset, err = parseInt(c.Query("offset")); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseTime(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, errBadQuery
	}
	if endOfDay {
		day = day.Add(24*time.Hour - time.Nanosecond)
	}
	return &day, nil
}

func parseInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errBadQuery
	}
	return n, nil
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     pricing.FormatAmount(item.Price),
			VATRate:   item.VATRate,
		})
	}
	return dto.OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		UserEmail:       order.UserEmail,
		UserName:        order.UserName,
		Status:          string(order.Status),
		StatusLabel:     order.Status.Label(),
		Total:           pricing.FormatAmount(order.Total),
		DeliveryAddress: order.DeliveryAddress,
		Notes:           order.Notes,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return response
}
