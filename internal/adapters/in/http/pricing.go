package http

import (
	"errors"
	"net/http"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/pricing"
	"bookstore/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// GetCurrentPrice handles GET /api/v1/books/{isbn}/price.
func (s *Server) GetCurrentPrice(c echo.Context) error {
	isbn, err := isbnParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	asOf, err := asOfParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetCurrentPriceQuery(isbn, asOf)
	if err != nil {
		return s.fail(c, err)
	}

	price, err := s.h.GetCurrentPrice.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, currentPriceResponse(price), "")
}

// GetPriceHistory handles GET /api/v1/books/{isbn}/price-history.
func (s *Server) GetPriceHistory(c echo.Context) error {
	isbn, err := isbnParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetPriceHistoryQuery(isbn)
	if err != nil {
		return s.fail(c, err)
	}

	history, err := s.h.GetPriceHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, priceChangeResponses(history), "")
}

// GetActivePromotions handles GET /api/v1/books/{isbn}/promotions.
func (s *Server) GetActivePromotions(c echo.Context) error {
	isbn, err := isbnParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	asOf, err := asOfParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetActivePromotionsQuery(isbn, asOf)
	if err != nil {
		return s.fail(c, err)
	}

	promotions, err := s.h.GetActivePromotions.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, promotionResponses(promotions), "")
}

// RecordPriceChange handles POST /api/v1/books/{isbn}/price-changes.
func (s *Server) RecordPriceChange(c echo.Context) error {
	isbn, err := isbnParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req RecordPriceChangeRequest
	if err = bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	effectiveFrom, dateErr := parseDate("effectiveFrom", req.EffectiveFrom)
	price, priceErr := kernel.MoneyFromString(req.NewPrice)
	createdBy, idErr := parseUUID("createdBy", req.CreatedBy)
	if err = errors.Join(dateErr, priceErr, idErr); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRecordPriceChangeCommand(isbn, effectiveFrom, price, createdBy)
	if err != nil {
		return s.fail(c, err)
	}

	change, err := s.h.RecordPriceChange.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusCreated, priceChangeResponse(change), "price change recorded")
}

// CreatePromotion handles POST /api/v1/promotions. Exactly one of isbn and categoryId
// selects the scope.
func (s *Server) CreatePromotion(c echo.Context) error {
	var req CreatePromotionRequest
	if err := bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	scope, scopeErr := promotionScope(req)
	discount, discountErr := promotionDiscount(req)
	start, startErr := parseDate("startDate", req.StartDate)
	end, endErr := parseDate("endDate", req.EndDate)
	if err := errors.Join(scopeErr, discountErr, startErr, endErr); err != nil {
		return s.fail(c, err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	cmd, err := commands.NewCreatePromotionCommand(req.Name, scope, discount, start, end, active)
	if err != nil {
		return s.fail(c, err)
	}

	promotion, err := s.h.CreatePromotion.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusCreated, promotionResponse(promotion), "promotion created")
}

func promotionScope(req CreatePromotionRequest) (pricing.Scope, error) {
	switch {
	case req.ISBN != nil && req.CategoryID != nil:
		return pricing.Scope{}, errs.NewValueIsInvalidErrorWithCause("scope",
			errors.New("isbn and categoryId are mutually exclusive"))
	case req.ISBN != nil:
		isbn, err := kernel.NewISBN(*req.ISBN)
		if err != nil {
			return pricing.Scope{}, err
		}
		return pricing.NewISBNScope(isbn)
	case req.CategoryID != nil:
		return pricing.NewCategoryScope(*req.CategoryID)
	default:
		return pricing.Scope{}, errs.NewValueIsRequiredErrorWithCause("scope",
			errors.New("one of isbn and categoryId is required"))
	}
}

func promotionDiscount(req CreatePromotionRequest) (pricing.Discount, error) {
	kind, err := pricing.ParseDiscountKind(req.DiscountKind)
	if err != nil {
		return pricing.Discount{}, err
	}
	value, err := decimal.NewFromString(req.DiscountValue)
	if err != nil {
		return pricing.Discount{}, errs.NewValueIsInvalidErrorWithCause("discountValue", err)
	}
	return pricing.NewDiscount(kind, value)
}
