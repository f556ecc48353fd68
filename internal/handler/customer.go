package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"crmsales/internal/model"
	"crmsales/internal/repository"
)

// CustomerStore is the slice of the customer repository the handlers use.
type CustomerStore interface {
	Create(ctx context.Context, c *model.Customer) error
	GsmExists(ctx context.Context, gsm string) (bool, error)
	Update(ctx context.Context, id uint64, u repository.CustomerUpdate) error
}

// CustomerHandler implements customer registration and partial update.
type CustomerHandler struct {
	Customers CustomerStore
}

func NewCustomerHandler(s CustomerStore) *CustomerHandler {
	return &CustomerHandler{Customers: s}
}

type createCustomerReq struct {
	Name     string  `json:"name"`
	Surname  string  `json:"surname"`
	Gsm      string  `json:"gsm"`
	BirthDay *string `json:"birthDay"`
	Gender   *string `json:"gender"`
}

// Pointer fields distinguish "absent" from "explicitly empty", so a
// partial update never clobbers fields the client did not send.
type updateCustomerReq struct {
	Name     *string `json:"name"`
	Surname  *string `json:"surname"`
	Gsm      *string `json:"gsm"`
	BirthDay *string `json:"birthDay"`
	Gender   *string `json:"gender"`
}

// Create handles POST /create_customer/. The GSM number is the customer's
// unique business key; a duplicate is reported before insert when the
// fast-path check catches it, and by the unique constraint otherwise.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, reasonUnexpected)
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)
	req.Gsm = strings.TrimSpace(req.Gsm)
	if req.Name == "" || req.Surname == "" || req.Gsm == "" {
		return fail(c, http.StatusBadRequest, reasonUnexpected)
	}
	birthday, ok := parseOptionalDate(req.BirthDay)
	if !ok {
		return fail(c, http.StatusBadRequest, reasonUnexpected)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Customers.GsmExists(ctx, req.Gsm)
	if err != nil {
		return fail(c, http.StatusInternalServerError, reasonStorage)
	}
	if exists {
		return fail(c, http.StatusBadRequest, "This GSM number is already registered.")
	}

	cust := &model.Customer{
		Name:     req.Name,
		Surname:  req.Surname,
		Gsm:      req.Gsm,
		Gender:   req.Gender,
		Birthday: birthday,
	}
	if err := h.Customers.Create(ctx, cust); err != nil {
		// A concurrent insert can slip past the pre-check; the unique
		// constraint still reports it as the same conflict.
		if errors.Is(err, repository.ErrGsmExists) {
			return fail(c, http.StatusBadRequest, "This GSM number is already registered.")
		}
		return fail(c, http.StatusInternalServerError, reasonStorage)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"customer_id": cust.ID,
	})
}

// Update handles PUT /update_customer/:id. Only fields present in the
// body are applied; everything else keeps its stored value.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, reasonUnexpected)
	}
	var req updateCustomerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, reasonUnexpected)
	}
	birthday, ok := parseOptionalDate(req.BirthDay)
	if !ok {
		return fail(c, http.StatusBadRequest, reasonUnexpected)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	upd := repository.CustomerUpdate{
		Name:     req.Name,
		Surname:  req.Surname,
		Gsm:      req.Gsm,
		Gender:   req.Gender,
		Birthday: birthday,
	}
	if err := h.Customers.Update(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, repository.ErrCustomerNotFound):
			return fail(c, http.StatusBadRequest, "Customer not found.")
		case errors.Is(err, repository.ErrGsmExists):
			return fail(c, http.StatusBadRequest, "This GSM number is already registered.")
		default:
			return fail(c, http.StatusInternalServerError, reasonStorage)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"customer_id": id,
	})
}

// parseOptionalDate parses a YYYY-MM-DD string when present. The second
// return is false when a value was supplied but does not parse.
func parseOptionalDate(s *string) (*time.Time, bool) {
	if s == nil {
		return nil, true
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
