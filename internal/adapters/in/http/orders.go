package http

import (
	"errors"
	"net/http"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	customerID, err := parseUUID("customerId", req.CustomerID)
	if err != nil {
		return s.fail(c, err)
	}
	shipping, err := kernel.NewShippingInfo(
		req.Shipping.ReceiverName, req.Shipping.ReceiverPhone, req.Shipping.Address, req.Shipping.Region)
	if err != nil {
		return s.fail(c, err)
	}

	items := make([]commands.OrderItem, 0, len(req.Items))
	var itemErrs []error
	for _, item := range req.Items {
		isbn, err := kernel.NewISBN(item.ISBN)
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		items = append(items, commands.OrderItem{ISBN: isbn, Quantity: item.Quantity})
	}
	if err = errors.Join(itemErrs...); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, shipping, req.Note, items)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusCreated, orderResponse(o), "order placed")
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(c echo.Context) error {
	params, err := orderListParamsFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrdersQuery(params.status, params.customerID, params.page, params.size)
	if err != nil {
		return s.fail(c, err)
	}

	page, err := s.h.GetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, orderPageResponse(page), "")
}

// GetOrderByID handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrderByID(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.GetOrderByID.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, orderViewResponse(view), "")
}

// ApproveOrder handles POST /api/v1/orders/{orderId}/approval.
func (s *Server) ApproveOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req ApproveOrderRequest
	if err = bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	approverID, err := parseUUID("approverId", req.ApproverID)
	if err != nil {
		return s.fail(c, err)
	}
	decision, err := commands.ParseDecision(req.Decision)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewApproveOrderCommand(orderID, approverID, decision, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.ApproveOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	message := "order approved"
	if decision == commands.DecisionReject {
		message = "order rejected"
	}
	return respond(c, http.StatusOK, orderResponse(o), message)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancellation.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req CancelOrderRequest
	if err = bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	actorID, err := parseUUID("actorId", req.ActorID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorID, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, orderResponse(o), "order cancelled")
}

// AssignDelivery handles POST /api/v1/orders/{orderId}/delivery-assignment.
func (s *Server) AssignDelivery(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req AssignDeliveryRequest
	if err = bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	employeeID, err := parseUUID("employeeId", req.EmployeeID)
	if err != nil {
		return s.fail(c, err)
	}
	assignerID, err := parseUUID("assignerId", req.AssignerID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAssignDeliveryCommand(orderID, employeeID, assignerID)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.AssignDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, orderResponse(o), "courier assigned")
}

// ConfirmDelivered handles POST /api/v1/orders/{orderId}/delivery-confirmation.
func (s *Server) ConfirmDelivered(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req ConfirmDeliveredRequest
	if err = bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	confirmerID, err := parseUUID("confirmerId", req.ConfirmerID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewConfirmDeliveredCommand(orderID, confirmerID)
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.h.ConfirmDelivered.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, DeliveryConfirmationResponse{
		Order:          orderResponse(res.Order),
		Invoice:        invoiceResponse(res.Invoice),
		InvoiceCreated: res.InvoiceCreated,
	}, "order delivered")
}

// GetDeliveryCandidates handles GET /api/v1/orders/{orderId}/delivery-candidates.
func (s *Server) GetDeliveryCandidates(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetDeliveryCandidatesQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	candidates, err := s.h.GetDeliveryCandidates.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, candidateResponses(candidates), "")
}
