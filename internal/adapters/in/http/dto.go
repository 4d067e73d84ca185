package http

import (
	"time"

	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/domain/model/pricing"
	"bookstore/internal/core/domain/services"
)

const dateLayout = time.DateOnly

// Requests.

type ShippingRequest struct {
	ReceiverName  string `json:"receiverName"`
	ReceiverPhone string `json:"receiverPhone"`
	Address       string `json:"address"`
	Region        string `json:"region"`
}

type OrderItemRequest struct {
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID string             `json:"customerId"`
	Shipping   ShippingRequest    `json:"shipping"`
	Note       string             `json:"note"`
	Items      []OrderItemRequest `json:"items"`
}

type ApproveOrderRequest struct {
	ApproverID string `json:"approverId"`
	Decision   string `json:"decision"`
	Reason     string `json:"reason"`
}

type CancelOrderRequest struct {
	ActorID string `json:"actorId"`
	Reason  string `json:"reason"`
}

type AssignDeliveryRequest struct {
	EmployeeID string `json:"employeeId"`
	AssignerID string `json:"assignerId"`
}

type ConfirmDeliveredRequest struct {
	ConfirmerID string `json:"confirmerId"`
}

type MarkInvoicePaidRequest struct {
	Method    string    `json:"method"`
	Reference string    `json:"reference"`
	PaidAt    time.Time `json:"paidAt"`
}

type RecordPriceChangeRequest struct {
	EffectiveFrom string `json:"effectiveFrom"`
	NewPrice      string `json:"newPrice"`
	CreatedBy     string `json:"createdBy"`
}

type CreatePromotionRequest struct {
	Name          string  `json:"name"`
	ISBN          *string `json:"isbn"`
	CategoryID    *int64  `json:"categoryId"`
	DiscountKind  string  `json:"discountKind"`
	DiscountValue string  `json:"discountValue"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Active        *bool   `json:"active"`
}

// Responses.

type ShippingResponse struct {
	ReceiverName  string `json:"receiverName"`
	ReceiverPhone string `json:"receiverPhone"`
	Address       string `json:"address"`
	Region        string `json:"region"`
}

type OrderLineResponse struct {
	Position    int    `json:"position"`
	ISBN        string `json:"isbn"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Total       string `json:"total"`
	PromotionID *int64 `json:"promotionId,omitempty"`
}

type OrderResponse struct {
	ID                 string              `json:"id"`
	CustomerID         string              `json:"customerId"`
	Status             string              `json:"status"`
	PlacedAt           time.Time           `json:"placedAt"`
	DeliveryAt         *time.Time          `json:"deliveryAt,omitempty"`
	AssignedEmployeeID *string             `json:"assignedEmployeeId,omitempty"`
	ApprovedBy         *string             `json:"approvedBy,omitempty"`
	Shipping           ShippingResponse    `json:"shipping"`
	Note               string              `json:"note,omitempty"`
	CancelReason       string              `json:"cancelReason,omitempty"`
	Lines              []OrderLineResponse `json:"lines"`
	Total              string              `json:"total"`
}

type OrderSummaryResponse struct {
	ID                 string     `json:"id"`
	CustomerID         string     `json:"customerId"`
	Status             string     `json:"status"`
	PlacedAt           time.Time  `json:"placedAt"`
	DeliveryAt         *time.Time `json:"deliveryAt,omitempty"`
	AssignedEmployeeID *string    `json:"assignedEmployeeId,omitempty"`
	LineCount          int        `json:"lineCount"`
	Total              string     `json:"total"`
}

type OrderPageResponse struct {
	Items []OrderSummaryResponse `json:"items"`
	Page  int                    `json:"page"`
	Size  int                    `json:"size"`
	Total int64                  `json:"total"`
}

type InvoiceResponse struct {
	ID               string     `json:"id"`
	OrderID          string     `json:"orderId"`
	Number           string     `json:"number"`
	TotalAmount      string     `json:"totalAmount"`
	TaxAmount        string     `json:"taxAmount"`
	Status           string     `json:"status"`
	PaymentMethod    *string    `json:"paymentMethod,omitempty"`
	PaymentReference *string    `json:"paymentReference,omitempty"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

type DeliveryConfirmationResponse struct {
	Order          OrderResponse   `json:"order"`
	Invoice        InvoiceResponse `json:"invoice"`
	InvoiceCreated bool            `json:"invoiceCreated"`
}

type DeliveryCandidateResponse struct {
	EmployeeID       string `json:"employeeId"`
	Name             string `json:"name"`
	Region           string `json:"region"`
	ActiveDeliveries int    `json:"activeDeliveries"`
	RegionMatch      bool   `json:"regionMatch"`
	Score            int    `json:"score"`
}

type CurrentPriceResponse struct {
	ISBN          string `json:"isbn"`
	Price         string `json:"price"`
	EffectiveFrom string `json:"effectiveFrom"`
	PriceChangeID int64  `json:"priceChangeId"`
	AsOf          string `json:"asOf"`
}

type PriceChangeResponse struct {
	ID            int64     `json:"id"`
	ISBN          string    `json:"isbn"`
	EffectiveFrom string    `json:"effectiveFrom"`
	NewPrice      string    `json:"newPrice"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

type PromotionResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ISBN          *string   `json:"isbn,omitempty"`
	CategoryID    *int64    `json:"categoryId,omitempty"`
	DiscountKind  string    `json:"discountKind"`
	DiscountValue string    `json:"discountValue"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func shippingResponse(s kernel.ShippingInfo) ShippingResponse {
	return ShippingResponse{
		ReceiverName:  s.ReceiverName(),
		ReceiverPhone: s.ReceiverPhone(),
		Address:       s.Address(),
		Region:        s.Region(),
	}
}

func orderResponse(o *order.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		lines = append(lines, OrderLineResponse{
			Position:    line.Position(),
			ISBN:        line.ISBN().String(),
			Quantity:    line.Quantity(),
			UnitPrice:   line.UnitPrice().String(),
			Total:       line.Total().String(),
			PromotionID: line.PromotionID(),
		})
	}

	return OrderResponse{
		ID:                 o.ID().String(),
		CustomerID:         o.CustomerID().String(),
		Status:             o.Status().String(),
		PlacedAt:           o.PlacedAt(),
		DeliveryAt:         o.DeliveryAt(),
		AssignedEmployeeID: uuidString(o.AssignedEmployeeID()),
		ApprovedBy:         uuidString(o.ApprovedBy()),
		Shipping:           shippingResponse(o.Shipping()),
		Note:               o.Note(),
		CancelReason:       o.CancelReason(),
		Lines:              lines,
		Total:              o.Total().String(),
	}
}

func orderViewResponse(v queries.OrderView) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(v.Lines))
	for _, line := range v.Lines {
		lines = append(lines, OrderLineResponse{
			Position:    line.Position,
			ISBN:        line.ISBN.String(),
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.String(),
			Total:       line.Total.String(),
			PromotionID: line.PromotionID,
		})
	}

	return OrderResponse{
		ID:                 v.ID.String(),
		CustomerID:         v.CustomerID.String(),
		Status:             v.Status.String(),
		PlacedAt:           v.PlacedAt,
		DeliveryAt:         v.DeliveryAt,
		AssignedEmployeeID: uuidString(v.AssignedEmployeeID),
		ApprovedBy:         uuidString(v.ApprovedBy),
		Shipping:           shippingResponse(v.Shipping),
		Note:               v.Note,
		CancelReason:       v.CancelReason,
		Lines:              lines,
		Total:              v.Total.String(),
	}
}

func orderPageResponse(page queries.GetOrdersQueryResponse) OrderPageResponse {
	items := make([]OrderSummaryResponse, 0, len(page.Items))
	for _, s := range page.Items {
		items = append(items, OrderSummaryResponse{
			ID:                 s.ID.String(),
			CustomerID:         s.CustomerID.String(),
			Status:             s.Status.String(),
			PlacedAt:           s.PlacedAt,
			DeliveryAt:         s.DeliveryAt,
			AssignedEmployeeID: uuidString(s.AssignedEmployeeID),
			LineCount:          s.LineCount,
			Total:              s.Total.String(),
		})
	}
	return OrderPageResponse{Items: items, Page: page.Page, Size: page.Size, Total: page.Total}
}

func invoiceResponse(inv *invoice.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:          inv.ID().String(),
		OrderID:     inv.OrderID().String(),
		Number:      inv.Number(),
		TotalAmount: inv.TotalAmount().String(),
		TaxAmount:   inv.TaxAmount().String(),
		Status:      inv.Status().String(),
		CreatedAt:   inv.CreatedAt(),
	}
	if p := inv.Payment(); p != nil {
		method, reference, paidAt := p.Method(), p.Reference(), p.PaidAt()
		resp.PaymentMethod = &method
		resp.PaymentReference = &reference
		resp.PaidAt = &paidAt
	}
	return resp
}

func invoiceViewResponse(v queries.InvoiceView) InvoiceResponse {
	return InvoiceResponse{
		ID:               v.ID.String(),
		OrderID:          v.OrderID.String(),
		Number:           v.Number,
		TotalAmount:      v.TotalAmount.String(),
		TaxAmount:        v.TaxAmount.String(),
		Status:           v.Status.String(),
		PaymentMethod:    v.PaymentMethod,
		PaymentReference: v.PaymentReference,
		PaidAt:           v.PaidAt,
		CreatedAt:        v.CreatedAt,
	}
}

func candidateResponses(candidates []services.DeliveryCandidate) []DeliveryCandidateResponse {
	resp := make([]DeliveryCandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		resp = append(resp, DeliveryCandidateResponse{
			EmployeeID:       c.Employee.ID().String(),
			Name:             c.Employee.Name(),
			Region:           c.Employee.Region(),
			ActiveDeliveries: c.ActiveDeliveries,
			RegionMatch:      c.RegionMatch,
			Score:            c.Score,
		})
	}
	return resp
}

func currentPriceResponse(p queries.CurrentPriceResponse) CurrentPriceResponse {
	return CurrentPriceResponse{
		ISBN:          p.ISBN.String(),
		Price:         p.Price.String(),
		EffectiveFrom: p.EffectiveFrom.Format(dateLayout),
		PriceChangeID: p.PriceChangeID,
		AsOf:          p.AsOf.Format(dateLayout),
	}
}

func priceChangeResponse(p *pricing.PriceChange) PriceChangeResponse {
	return PriceChangeResponse{
		ID:            p.ID(),
		ISBN:          p.ISBN().String(),
		EffectiveFrom: p.EffectiveFrom().Format(dateLayout),
		NewPrice:      p.NewPrice().String(),
		CreatedBy:     p.CreatedBy().String(),
		CreatedAt:     p.CreatedAt(),
	}
}

func priceChangeResponses(changes []*pricing.PriceChange) []PriceChangeResponse {
	resp := make([]PriceChangeResponse, 0, len(changes))
	for _, p := range changes {
		resp = append(resp, priceChangeResponse(p))
	}
	return resp
}

func promotionResponse(p *pricing.Promotion) PromotionResponse {
	resp := PromotionResponse{
		ID:            p.ID(),
		Name:          p.Name(),
		CategoryID:    p.Scope().CategoryID(),
		DiscountKind:  p.Discount().Kind().String(),
		DiscountValue: p.Discount().Value().StringFixed(2),
		StartDate:     p.StartDate().Format(dateLayout),
		EndDate:       p.EndDate().Format(dateLayout),
		Active:        p.Active(),
		CreatedAt:     p.CreatedAt(),
	}
	if isbn := p.Scope().ISBN(); isbn != nil {
		s := isbn.String()
		resp.ISBN = &s
	}
	return resp
}

func promotionResponses(promotions []*pricing.Promotion) []PromotionResponse {
	resp := make([]PromotionResponse, 0, len(promotions))
	for _, p := range promotions {
		resp = append(resp, promotionResponse(p))
	}
	return resp
}
