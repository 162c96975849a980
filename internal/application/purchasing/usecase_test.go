package purchasing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rentalops/internal/application/dto"
	"github.com/jhoicas/rentalops/internal/application/purchasing"
	"github.com/jhoicas/rentalops/internal/domain"
	"github.com/jhoicas/rentalops/internal/domain/access"
	"github.com/jhoicas/rentalops/internal/domain/entity"
	"github.com/jhoicas/rentalops/internal/domain/repository"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type memOrders struct {
	byID      map[string]*entity.PurchaseOrder
	createErr error
}

func (m *memOrders) Create(_ context.Context, po *entity.PurchaseOrder) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[po.ID] = po
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	return m.byID[id], nil
}

func (m *memOrders) List(_ context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range m.byID {
		if f.Status == "" || po.Status == f.Status {
			out = append(out, po)
		}
	}
	return out, nil
}

func (m *memOrders) UpdateDecision(_ context.Context, po *entity.PurchaseOrder) error {
	m.byID[po.ID] = po
	return nil
}

type memRentals struct{ byID map[string]*entity.RentalRequest }

func (m *memRentals) Create(_ context.Context, r *entity.RentalRequest) error {
	m.byID[r.ID] = r
	return nil
}
func (m *memRentals) GetByID(_ context.Context, id string) (*entity.RentalRequest, error) {
	return m.byID[id], nil
}
func (m *memRentals) List(context.Context, repository.RentalFilter) ([]*entity.RentalRequest, error) {
	return nil, nil
}
func (m *memRentals) UpdateStatus(_ context.Context, id, status string) error {
	m.byID[id].Status = status
	return nil
}

// fakeTx simula la transacción: si fn falla, restaura el estado de la renta.
type fakeTx struct {
	orders  *memOrders
	rentals *memRentals
	calls   int
}

func (f *fakeTx) RunPurchasing(ctx context.Context, fn func(repository.PurchaseOrderRepository, repository.RentalRepository) error) error {
	f.calls++
	snapshot := map[string]string{}
	for id, r := range f.rentals.byID {
		snapshot[id] = r.Status
	}
	if err := fn(f.orders, f.rentals); err != nil {
		for id, st := range snapshot {
			f.rentals.byID[id].Status = st
		}
		return err
	}
	return nil
}

type districts struct{}

func (districts) ListActive(context.Context) ([]*entity.District, error) { return nil, nil }
func (districts) GetByID(_ context.Context, id string) (*entity.District, error) {
	if id == "d1" {
		return &entity.District{ID: "d1", Code: "CEN", Name: "Centro", Active: true}, nil
	}
	return nil, nil
}

type codes struct{}

func (codes) ListActive(context.Context) ([]*entity.CommodityCode, error) { return nil, nil }
func (codes) GetByCode(_ context.Context, code string) (*entity.CommodityCode, error) {
	switch code {
	case "7210", "1105":
		return &entity.CommodityCode{Code: code, Active: true}, nil
	}
	return nil, nil
}

type fakePDF struct {
	got *entity.PurchaseOrder
}

func (f *fakePDF) GeneratePurchaseOrderPDF(po *entity.PurchaseOrder, d *entity.District) ([]byte, error) {
	f.got = po
	return []byte("%PDF-" + d.Name), nil
}

const rentalID = "0b7e6f36-6a1f-4d52-9a57-3f1f7a0c1d11"

type fixture struct {
	uc      *purchasing.PurchaseOrderUseCase
	orders  *memOrders
	rentals *memRentals
	tx      *fakeTx
	pdf     *fakePDF
}

func newFixture() *fixture {
	orders := &memOrders{byID: map[string]*entity.PurchaseOrder{}}
	rentals := &memRentals{byID: map[string]*entity.RentalRequest{
		rentalID: {ID: rentalID, Number: "RR-20260301-ABCDEF", Status: entity.RentalStatusSubmitted},
	}}
	tx := &fakeTx{orders: orders, rentals: rentals}
	pdf := &fakePDF{}
	return &fixture{
		uc:      purchasing.NewPurchaseOrderUseCase(tx, orders, rentals, districts{}, codes{}, pdf),
		orders:  orders,
		rentals: rentals,
		tx:      tx,
		pdf:     pdf,
	}
}

var (
	coordinador = &access.Session{UserID: "u-rc", Role: access.RoleRC}
	finanzas    = &access.Session{UserID: "u-fin", Role: access.RoleFIN}
)

func validOrder() dto.CreatePurchaseOrderRequest {
	return dto.CreatePurchaseOrderRequest{
		RentalID:   rentalID,
		Vendor:     "Equipos Andinos S.A.S.",
		DistrictID: "d1",
		Lines: []dto.PurchaseOrderLineRequest{
			{CommodityCode: "7210", Description: "Grúa 50t x 5 días", Quantity: "5", UnitPrice: "301.00"},
			{},
			{CommodityCode: "1105", Description: "Transporte", Quantity: "1.5", UnitPrice: "99.999"},
		},
	}
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestCreate_OKMarcaLaRentaComoOrdenada(t *testing.T) {
	f := newFixture()

	out, err := f.uc.Create(context.Background(), coordinador, validOrder())
	require.NoError(t, err)

	assert.Regexp(t, `^PO-\d{8}-[0-9A-F]{6}$`, out.Number)
	assert.Equal(t, entity.PurchaseOrderPending, out.Status)
	require.Len(t, out.Lines, 2, "la fila vacía se descarta")
	assert.Equal(t, 1, out.Lines[0].LineNo)
	assert.Equal(t, 2, out.Lines[1].LineNo)
	// 5 × 301.00 + 1.5 × 100.00
	assert.True(t, decimal.RequireFromString("1655").Equal(out.Total), out.Total.String())
	assert.Equal(t, rentalID, out.RentalID)
	assert.Equal(t, entity.RentalStatusOrdered, f.rentals.byID[rentalID].Status)
	assert.Equal(t, 1, f.tx.calls)
}

func TestCreate_SinRentaNoTocaRentas(t *testing.T) {
	f := newFixture()
	in := validOrder()
	in.RentalID = ""

	out, err := f.uc.Create(context.Background(), coordinador, in)
	require.NoError(t, err)
	assert.Empty(t, out.RentalID)
	assert.Equal(t, entity.RentalStatusSubmitted, f.rentals.byID[rentalID].Status)
}

func TestCreate_FalloEnTransaccionNoDejaRentaOrdenada(t *testing.T) {
	f := newFixture()
	f.orders.createErr = errors.New("violación de FK")

	_, err := f.uc.Create(context.Background(), coordinador, validOrder())
	require.Error(t, err)
	assert.Equal(t, entity.RentalStatusSubmitted, f.rentals.byID[rentalID].Status)
	assert.Empty(t, f.orders.byID)
}

func TestCreate_RentaYaOrdenada(t *testing.T) {
	f := newFixture()
	f.rentals.byID[rentalID].Status = entity.RentalStatusOrdered

	_, err := f.uc.Create(context.Background(), coordinador, validOrder())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Zero(t, f.tx.calls)
}

func TestCreate_Validaciones(t *testing.T) {
	casos := map[string]func(*dto.CreatePurchaseOrderRequest){
		"sin líneas":          func(in *dto.CreatePurchaseOrderRequest) { in.Lines = []dto.PurchaseOrderLineRequest{{}} },
		"proveedor vacío":     func(in *dto.CreatePurchaseOrderRequest) { in.Vendor = "" },
		"distrito inexistente": func(in *dto.CreatePurchaseOrderRequest) { in.DistrictID = "d9" },
		"código inexistente":  func(in *dto.CreatePurchaseOrderRequest) { in.Lines[0].CommodityCode = "0000" },
		"cantidad cero":       func(in *dto.CreatePurchaseOrderRequest) { in.Lines[0].Quantity = "0" },
		"precio negativo":     func(in *dto.CreatePurchaseOrderRequest) { in.Lines[2].UnitPrice = "-1" },
		"renta no uuid":       func(in *dto.CreatePurchaseOrderRequest) { in.RentalID = "RR-1" },
	}
	for name, mutate := range casos {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			in := validOrder()
			mutate(&in)
			_, err := f.uc.Create(context.Background(), coordinador, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestCreate_RolNoAutorizado(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), finanzas, validOrder())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Create(context.Background(), &access.Session{UserID: "u", Role: access.RoleDataEntry}, validOrder())
	assert.NoError(t, err, "Data Entry pertenece a Coordinación de Rentas")
}

func TestDecision_ApruebaYRechazaSoloPendientes(t *testing.T) {
	f := newFixture()
	in := validOrder()
	in.RentalID = ""
	a, err := f.uc.Create(context.Background(), coordinador, in)
	require.NoError(t, err)
	b, err := f.uc.Create(context.Background(), coordinador, in)
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), coordinador, a.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	ok, err := f.uc.Approve(context.Background(), finanzas, a.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderApproved, ok.Status)
	assert.Equal(t, "u-fin", ok.DecidedBy)
	assert.NotNil(t, ok.DecidedAt)

	_, err = f.uc.Reject(context.Background(), finanzas, a.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	rej, err := f.uc.Reject(context.Background(), finanzas, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderRejected, rej.Status)

	_, err = f.uc.Approve(context.Background(), finanzas, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltraPorEstado(t *testing.T) {
	f := newFixture()
	in := validOrder()
	in.RentalID = ""
	_, err := f.uc.Create(context.Background(), coordinador, in)
	require.NoError(t, err)

	out, err := f.uc.List(context.Background(), repository.PurchaseOrderFilter{Status: entity.PurchaseOrderPending})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 20, out.Page.Limit)

	out, err = f.uc.List(context.Background(), repository.PurchaseOrderFilter{Status: entity.PurchaseOrderApproved})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestRenderPDF(t *testing.T) {
	f := newFixture()
	po, err := f.uc.Create(context.Background(), coordinador, validOrder())
	require.NoError(t, err)

	content, name, err := f.uc.RenderPDF(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-Centro"), content)
	assert.Equal(t, po.Number+".pdf", name)
	assert.Equal(t, po.ID, f.pdf.got.ID)

	_, _, err = f.uc.RenderPDF(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
