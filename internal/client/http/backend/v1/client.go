package backendclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/workshop/internal/client/converter"
	"github.com/you-humble/workshop/internal/model"
)

const (
	codeInsufficientStock = "INSUFFICIENT_STOCK"
	maxErrorBody          = 64 << 10
)

type tokenKey struct{}

// WithToken stores the caller's bearer token for the requests made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type client struct {
	baseURL string
	http    HTTPDoer
}

func NewClient(baseURL string, timeout time.Duration) *client {
	return NewClientWithDoer(baseURL, &http.Client{Timeout: timeout})
}

func NewClientWithDoer(baseURL string, doer HTTPDoer) *client {
	return &client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    doer,
	}
}

// ======= Orders =======

func (c *client) OrderByID(ctx context.Context, id int64) (*model.Order, error) {
	var dto converter.OrderDTO
	if err := c.do(ctx, http.MethodGet, orderPath(id), nil, nil, model.ErrOrderNotFound, &dto); err != nil {
		return nil, err
	}
	return converter.OrderToModel(dto), nil
}

func (c *client) ListOrders(ctx context.Context, filter model.OrderFilter) ([]*model.Order, error) {
	q := url.Values{}
	if filter.MechanicID != nil {
		q.Set("mechanicId", strconv.FormatInt(*filter.MechanicID, 10))
	}
	for _, s := range filter.Statuses {
		q.Add("status", string(s))
	}

	var dtos []converter.OrderDTO
	if err := c.do(ctx, http.MethodGet, "/orders", q, nil, nil, &dtos); err != nil {
		return nil, err
	}
	return lo.Map(dtos, func(d converter.OrderDTO, _ int) *model.Order { return converter.OrderToModel(d) }), nil
}

func (c *client) CreateOrder(ctx context.Context, draft model.OrderDraft, lines []model.Line) (*model.Order, error) {
	var dto converter.OrderDTO
	body := converter.CreateOrderToDTO(draft, lines)
	if err := c.do(ctx, http.MethodPost, "/orders", nil, body, nil, &dto); err != nil {
		return nil, err
	}
	return converter.OrderToModel(dto), nil
}

func (c *client) UpdateOrder(ctx context.Context, id int64, header model.OrderHeader) (*model.Order, error) {
	var dto converter.OrderDTO
	body := converter.UpdateOrderRequest{MechanicID: header.MechanicID, Notes: header.Notes}
	if err := c.do(ctx, http.MethodPut, orderPath(id), nil, body, model.ErrOrderNotFound, &dto); err != nil {
		return nil, err
	}
	return converter.OrderToModel(dto), nil
}

func (c *client) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	var dto converter.OrderDTO
	body := converter.StatusRequest{Status: string(status)}
	if err := c.do(ctx, http.MethodPatch, orderPath(id)+"/status", nil, body, model.ErrOrderNotFound, &dto); err != nil {
		return nil, err
	}
	return converter.OrderToModel(dto), nil
}

// ReplaceOrderLines swaps the whole line set of the order.
func (c *client) ReplaceOrderLines(ctx context.Context, id int64, lines []model.Line) (*model.Order, error) {
	return c.replaceLines(ctx, orderPath(id)+"/lines", lines)
}

// ReplaceOrderLinesRestricted is the mechanic variant; the persistence service
// rejects anything but product lines on it.
func (c *client) ReplaceOrderLinesRestricted(ctx context.Context, id int64, lines []model.Line) (*model.Order, error) {
	return c.replaceLines(ctx, orderPath(id)+"/lines-restricted", lines)
}

func (c *client) replaceLines(ctx context.Context, path string, lines []model.Line) (*model.Order, error) {
	var dto converter.OrderDTO
	body := converter.LinesRequest{Lines: converter.LinesToDTO(lines)}
	if err := c.do(ctx, http.MethodPut, path, nil, body, model.ErrOrderNotFound, &dto); err != nil {
		return nil, err
	}
	return converter.OrderToModel(dto), nil
}

func (c *client) DeleteOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, orderPath(id), nil, nil, model.ErrOrderNotFound, nil)
}

// ======= Invoices =======

func (c *client) InvoiceByID(ctx context.Context, id int64) (*model.Invoice, error) {
	var dto converter.InvoiceDTO
	if err := c.do(ctx, http.MethodGet, invoicePath(id), nil, nil, model.ErrInvoiceNotFound, &dto); err != nil {
		return nil, err
	}
	return converter.InvoiceToModel(dto), nil
}

func (c *client) ListInvoices(ctx context.Context) ([]*model.Invoice, error) {
	var dtos []converter.InvoiceDTO
	if err := c.do(ctx, http.MethodGet, "/invoices", nil, nil, nil, &dtos); err != nil {
		return nil, err
	}
	return lo.Map(dtos, func(d converter.InvoiceDTO, _ int) *model.Invoice { return converter.InvoiceToModel(d) }), nil
}

func (c *client) CreateInvoice(ctx context.Context, in model.InvoiceFromOrder) (*model.Invoice, error) {
	var dto converter.InvoiceDTO
	body := converter.CreateInvoiceRequest{
		OrderID:       in.OrderID,
		PaymentMethod: string(in.PaymentMethod),
		Notes:         in.Notes,
	}
	if err := c.do(ctx, http.MethodPost, "/invoices", nil, body, model.ErrOrderNotFound, &dto); err != nil {
		return nil, err
	}
	return converter.InvoiceToModel(dto), nil
}

func (c *client) CreateStandaloneInvoice(
	ctx context.Context,
	draft model.InvoiceDraft,
	lines []model.Line,
) (*model.Invoice, error) {
	var dto converter.InvoiceDTO
	body := converter.StandaloneInvoiceToDTO(draft, lines)
	if err := c.do(ctx, http.MethodPost, "/invoices/standalone", nil, body, nil, &dto); err != nil {
		return nil, err
	}
	return converter.InvoiceToModel(dto), nil
}

func (c *client) EditInvoice(
	ctx context.Context,
	id int64,
	update model.InvoiceUpdate,
	conf model.Confirmation,
) (*model.Invoice, error) {
	var dto converter.InvoiceDTO
	body := converter.EditInvoiceToDTO(update, conf)
	if err := c.do(ctx, http.MethodPut, invoicePath(id)+"/edit", nil, body, model.ErrInvoiceNotFound, &dto); err != nil {
		return nil, err
	}
	return converter.InvoiceToModel(dto), nil
}

func (c *client) DeleteInvoice(ctx context.Context, id int64, conf model.Confirmation) error {
	body := converter.ConfirmationToDTO(conf)
	return c.do(ctx, http.MethodDelete, invoicePath(id), nil, body, model.ErrInvoiceNotFound, nil)
}

func (c *client) SetPaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) (*model.Invoice, error) {
	var dto converter.InvoiceDTO
	body := converter.PaymentStatusRequest{PaymentStatus: string(status)}
	path := invoicePath(id) + "/payment-status"
	if err := c.do(ctx, http.MethodPatch, path, nil, body, model.ErrInvoiceNotFound, &dto); err != nil {
		return nil, err
	}
	return converter.InvoiceToModel(dto), nil
}

// ValidateCredential reports whether the secret is accepted. A rejected secret is
// not an error; only transport and server failures are.
func (c *client) ValidateCredential(ctx context.Context, invoiceID int64, conf model.Confirmation) (bool, error) {
	var resp converter.ValidateCredentialResponse
	path := invoicePath(invoiceID) + "/validate-credential"
	err := c.do(ctx, http.MethodPost, path, nil, converter.ConfirmationToDTO(conf), model.ErrInvoiceNotFound, &resp)
	switch {
	case errors.Is(err, model.ErrInvalidCredential):
		return false, nil
	case err != nil:
		return false, err
	}
	return resp.Valid, nil
}

// ======= Catalog and parties =======

func (c *client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var dtos []converter.ProductDTO
	if err := c.do(ctx, http.MethodGet, "/products", nil, nil, nil, &dtos); err != nil {
		return nil, err
	}
	return lo.Map(dtos, func(d converter.ProductDTO, _ int) model.Product { return converter.ProductToModel(d) }), nil
}

func (c *client) ListServices(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	q := url.Values{"activeOnly": {strconv.FormatBool(activeOnly)}}

	var dtos []converter.ServiceDTO
	if err := c.do(ctx, http.MethodGet, "/services", q, nil, nil, &dtos); err != nil {
		return nil, err
	}
	return lo.Map(dtos, func(d converter.ServiceDTO, _ int) model.Service { return converter.ServiceToModel(d) }), nil
}

func (c *client) ListClients(ctx context.Context) ([]model.Client, error) {
	var dtos []converter.ClientDTO
	if err := c.do(ctx, http.MethodGet, "/clients", nil, nil, nil, &dtos); err != nil {
		return nil, err
	}
	return lo.Map(dtos, func(d converter.ClientDTO, _ int) model.Client { return converter.ClientToModel(d) }), nil
}

func (c *client) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	var dtos []converter.VehicleDTO
	if err := c.do(ctx, http.MethodGet, "/vehicles", nil, nil, nil, &dtos); err != nil {
		return nil, err
	}
	return lo.Map(dtos, func(d converter.VehicleDTO, _ int) model.Vehicle { return converter.VehicleToModel(d) }), nil
}

func (c *client) ListMechanics(ctx context.Context) ([]model.Mechanic, error) {
	var dtos []converter.MechanicDTO
	if err := c.do(ctx, http.MethodGet, "/mechanics", nil, nil, nil, &dtos); err != nil {
		return nil, err
	}
	return lo.Map(dtos, func(d converter.MechanicDTO, _ int) model.Mechanic { return converter.MechanicToModel(d) }), nil
}

// ======= Transport =======

// do sends one request and decodes the response into out. notFound is the
// sentinel a 404 maps to for this resource.
func (c *client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
	notFound error,
	out any,
) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", model.ErrBadGateway, method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", model.ErrBadGateway, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return mapError(resp, notFound)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", model.ErrBadGateway, method, path, err)
	}
	return nil
}

func mapError(resp *http.Response, notFound error) error {
	var e converter.ErrorDTO
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &e); err != nil || e.Message == "" {
		e.Message = strings.TrimSpace(string(raw))
	}
	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return model.NewValidationError("", e.Message)
	case http.StatusUnauthorized:
		if resp.Request != nil && strings.HasSuffix(resp.Request.URL.Path, "/validate-credential") {
			return fmt.Errorf("%w: %s", model.ErrInvalidCredential, e.Message)
		}
		return fmt.Errorf("%w: %s", model.ErrPermissionDenied, e.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", model.ErrPermissionDenied, e.Message)
	case http.StatusNotFound:
		if notFound == nil {
			return fmt.Errorf("%w: %s", model.ErrBadGateway, e.Message)
		}
		return fmt.Errorf("%w: %s", notFound, e.Message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", model.ErrStaleEntity, e.Message)
	case http.StatusUnprocessableEntity:
		if e.Code == codeInsufficientStock {
			return &model.InsufficientStockError{
				ProductID: e.ProductID,
				Requested: e.Requested,
				Available: lo.FromPtr(e.Available),
				Remote:    true,
			}
		}
		return model.NewValidationError("", e.Message)
	default:
		return fmt.Errorf("%w: status %d: %s", model.ErrBadGateway, resp.StatusCode, e.Message)
	}
}

func orderPath(id int64) string { return "/orders/" + strconv.FormatInt(id, 10) }

func invoicePath(id int64) string { return "/invoices/" + strconv.FormatInt(id, 10) }
