// Package actions agrupa las lecturas y escrituras que disparan las páginas.
// Cada acción hace una sola operación y devuelve Result; los errores se
// registran y se traducen a mensajes para el usuario, sin reintentos.
package actions

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/rentalops/internal/application/dto"
	"github.com/jhoicas/rentalops/internal/domain"
	"github.com/jhoicas/rentalops/internal/domain/access"
	"github.com/jhoicas/rentalops/internal/domain/repository"
	"github.com/jhoicas/rentalops/pkg/logger"
	"github.com/jhoicas/rentalops/pkg/metrics"
	"github.com/jhoicas/rentalops/pkg/validator"
)

// Nombres de acción (etiqueta "action" en métricas y logs).
const (
	ActionFetchDistricts      = "fetch_districts"
	ActionFetchCommodityCodes = "fetch_commodity_codes"
	ActionSubmitRental        = "submit_rental"
	ActionListRentals         = "list_rentals"
	ActionGetRental           = "get_rental"
	ActionCancelRental        = "cancel_rental"
	ActionSubmitPurchaseOrder = "submit_purchase_order"
	ActionListPurchaseOrders  = "list_purchase_orders"
	ActionGetPurchaseOrder    = "get_purchase_order"
	ActionDecidePurchaseOrder = "decide_purchase_order"
	ActionPurchaseOrderPDF    = "purchase_order_pdf"
)

// Mensajes mostrados al usuario.
const (
	MsgDistrictsUnavailable = "No se pudieron cargar los distritos. Intente de nuevo más tarde."
	MsgCodesUnavailable     = "No se pudieron cargar los códigos de commodity. Intente de nuevo más tarde."
	MsgNotFound             = "El registro solicitado no existe."
	MsgForbidden            = "No tiene permisos para realizar esta operación."
	MsgInvalidTransition    = "La operación no es válida para el estado actual del registro."
	MsgValidation           = "Revise los campos marcados en el formulario."
	MsgUnexpected           = "Ocurrió un error inesperado. Intente de nuevo más tarde."
)

// ReferenceReader lecturas de datos de referencia.
type ReferenceReader interface {
	ListDistricts(ctx context.Context) ([]dto.DistrictResponse, error)
	ListCommodityCodes(ctx context.Context) ([]dto.CommodityCodeResponse, error)
}

// RentalService operaciones sobre solicitudes de renta.
type RentalService interface {
	Create(ctx context.Context, session *access.Session, in dto.CreateRentalRequest) (*dto.RentalResponse, error)
	List(ctx context.Context, filter repository.RentalFilter) (*dto.RentalListResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RentalResponse, error)
	Cancel(ctx context.Context, session *access.Session, id string) error
}

// PurchaseOrderService operaciones sobre órdenes de compra.
type PurchaseOrderService interface {
	Create(ctx context.Context, session *access.Session, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	List(ctx context.Context, filter repository.PurchaseOrderFilter) (*dto.PurchaseOrderListResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error)
	Approve(ctx context.Context, session *access.Session, id string) (*dto.PurchaseOrderResponse, error)
	Reject(ctx context.Context, session *access.Session, id string) (*dto.PurchaseOrderResponse, error)
	RenderPDF(ctx context.Context, id string) ([]byte, string, error)
}

// PDFFile documento generado listo para descargar.
type PDFFile struct {
	Name    string
	Content []byte
}

// Actions fachada que usan los handlers de páginas.
type Actions struct {
	refs    ReferenceReader
	rentals RentalService
	orders  PurchaseOrderService
	log     *logger.Logger
	metrics *metrics.Metrics
}

// New construye las acciones. metrics puede ser nil.
func New(refs ReferenceReader, rentals RentalService, orders PurchaseOrderService, log *logger.Logger, m *metrics.Metrics) *Actions {
	if log == nil {
		log = logger.Nop()
	}
	return &Actions{refs: refs, rentals: rentals, orders: orders, log: log.Component("actions"), metrics: m}
}

// FetchDistricts lee los distritos activos.
func (a *Actions) FetchDistricts(ctx context.Context) Result[[]dto.DistrictResponse] {
	list, err := a.refs.ListDistricts(ctx)
	if err != nil {
		a.failed(ActionFetchDistricts, err)
		return Failure[[]dto.DistrictResponse](MsgDistrictsUnavailable)
	}
	return Success(list)
}

// FetchCommodityCodes lee los códigos de commodity activos.
func (a *Actions) FetchCommodityCodes(ctx context.Context) Result[[]dto.CommodityCodeResponse] {
	list, err := a.refs.ListCommodityCodes(ctx)
	if err != nil {
		a.failed(ActionFetchCommodityCodes, err)
		return Failure[[]dto.CommodityCodeResponse](MsgCodesUnavailable)
	}
	return Success(list)
}

// LoadFormReferences lanza ambas lecturas en paralelo. Si una falla, la otra se
// cancela y el resultado completo es Failure: no hay formulario parcial.
// Con las dos caídas el mensaje es siempre el de distritos.
func (a *Actions) LoadFormReferences(ctx context.Context) Result[dto.FormReferences] {
	var (
		refs             dto.FormReferences
		distErr, codeErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		refs.Districts, distErr = a.refs.ListDistricts(gctx)
		return distErr
	})
	g.Go(func() error {
		refs.CommodityCodes, codeErr = a.refs.ListCommodityCodes(gctx)
		return codeErr
	})
	if err := g.Wait(); err == nil {
		return Success(refs)
	}

	distFailed := a.readFailed(ctx, ActionFetchDistricts, distErr)
	codeFailed := a.readFailed(ctx, ActionFetchCommodityCodes, codeErr)
	switch {
	case distFailed:
		return Failure[dto.FormReferences](MsgDistrictsUnavailable)
	case codeFailed:
		return Failure[dto.FormReferences](MsgCodesUnavailable)
	case distErr != nil:
		return Failure[dto.FormReferences](MsgDistrictsUnavailable)
	default:
		return Failure[dto.FormReferences](MsgCodesUnavailable)
	}
}

// readFailed registra err como falla de action salvo que sea la cancelación
// provocada por la otra lectura (ctx de la petición sigue vivo).
func (a *Actions) readFailed(ctx context.Context, action string, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		return false
	}
	a.failed(action, err)
	return true
}

// SubmitRental crea una solicitud de renta.
func (a *Actions) SubmitRental(ctx context.Context, session *access.Session, in dto.CreateRentalRequest) Result[*dto.RentalResponse] {
	out, err := a.rentals.Create(ctx, session, in)
	if err != nil {
		return failWith[*dto.RentalResponse](a, ActionSubmitRental, err)
	}
	return Success(out)
}

// ListRentals lista solicitudes de renta.
func (a *Actions) ListRentals(ctx context.Context, filter repository.RentalFilter) Result[*dto.RentalListResponse] {
	out, err := a.rentals.List(ctx, filter)
	if err != nil {
		return failWith[*dto.RentalListResponse](a, ActionListRentals, err)
	}
	return Success(out)
}

// GetRental lee una solicitud de renta.
func (a *Actions) GetRental(ctx context.Context, id string) Result[*dto.RentalResponse] {
	out, err := a.rentals.GetByID(ctx, id)
	if err != nil {
		return failWith[*dto.RentalResponse](a, ActionGetRental, err)
	}
	return Success(out)
}

// CancelRental cancela una solicitud propia.
func (a *Actions) CancelRental(ctx context.Context, session *access.Session, id string) Result[struct{}] {
	if err := a.rentals.Cancel(ctx, session, id); err != nil {
		return failWith[struct{}](a, ActionCancelRental, err)
	}
	return Success(struct{}{})
}

// SubmitPurchaseOrder crea una orden de compra.
func (a *Actions) SubmitPurchaseOrder(ctx context.Context, session *access.Session, in dto.CreatePurchaseOrderRequest) Result[*dto.PurchaseOrderResponse] {
	out, err := a.orders.Create(ctx, session, in)
	if err != nil {
		return failWith[*dto.PurchaseOrderResponse](a, ActionSubmitPurchaseOrder, err)
	}
	return Success(out)
}

// ListPurchaseOrders lista órdenes de compra.
func (a *Actions) ListPurchaseOrders(ctx context.Context, filter repository.PurchaseOrderFilter) Result[*dto.PurchaseOrderListResponse] {
	out, err := a.orders.List(ctx, filter)
	if err != nil {
		return failWith[*dto.PurchaseOrderListResponse](a, ActionListPurchaseOrders, err)
	}
	return Success(out)
}

// GetPurchaseOrder obtiene una orden con sus líneas.
func (a *Actions) GetPurchaseOrder(ctx context.Context, id string) Result[*dto.PurchaseOrderResponse] {
	out, err := a.orders.GetByID(ctx, id)
	if err != nil {
		return failWith[*dto.PurchaseOrderResponse](a, ActionGetPurchaseOrder, err)
	}
	return Success(out)
}

// DecidePurchaseOrder aprueba (approve=true) o rechaza una orden pendiente.
func (a *Actions) DecidePurchaseOrder(ctx context.Context, session *access.Session, id string, approve bool) Result[*dto.PurchaseOrderResponse] {
	decide := a.orders.Reject
	if approve {
		decide = a.orders.Approve
	}
	out, err := decide(ctx, session, id)
	if err != nil {
		return failWith[*dto.PurchaseOrderResponse](a, ActionDecidePurchaseOrder, err)
	}
	return Success(out)
}

// PurchaseOrderPDF genera el PDF de una orden.
func (a *Actions) PurchaseOrderPDF(ctx context.Context, id string) Result[PDFFile] {
	content, name, err := a.orders.RenderPDF(ctx, id)
	if err != nil {
		return failWith[PDFFile](a, ActionPurchaseOrderPDF, err)
	}
	return Success(PDFFile{Name: name, Content: content})
}

func failWith[T any](a *Actions, action string, err error) Result[T] {
	a.failed(action, err)
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return failureWithFields[T](MsgValidation, ve.Fields())
	}
	return Failure[T](MessageFor(err))
}

func (a *Actions) failed(action string, err error) {
	a.metrics.ActionFailure(action)
	ev := a.log.Warn()
	if !isDomainError(err) {
		ev = a.log.Error()
	}
	ev.Err(err).Str("action", action).Msg("acción fallida")
}

// MessageFor traduce un error a un mensaje para el usuario.
// Los errores de entrada conservan su detalle; los internos se ocultan.
func MessageFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		return MsgInvalidTransition
	case errors.Is(err, domain.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthorized):
		return MsgForbidden
	default:
		return MsgUnexpected
	}
}

func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidInput, domain.ErrInvalidTransition, domain.ErrNotFound,
		domain.ErrForbidden, domain.ErrUnauthorized, domain.ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
