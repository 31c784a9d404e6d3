package checkout_test

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mobilia-api/internal/application/checkout"
	"github.com/tu-usuario/mobilia-api/internal/domain"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
	"github.com/tu-usuario/mobilia-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// memStore: implementación en memoria de los cuatro puertos que usa el motor.
// memTxRunner simula la transacción con snapshot + restore: si fn falla, el
// estado vuelve exactamente al de antes (así se verifica la atomicidad).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]*entity.Product
	materials map[string]*entity.Material
	orders    map[string]*entity.Order
	cart      map[string][]*entity.CartLine

	// failProductIncrement fuerza un error al restaurar este producto
	// (para probar el rollback de la cancelación).
	failProductIncrement string
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[string]*entity.Product{},
		materials: map[string]*entity.Material{},
		orders:    map[string]*entity.Order{},
		cart:      map[string][]*entity.CartLine{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.failProductIncrement = s.failProductIncrement
	for id, p := range s.products {
		cp := *p
		cp.BOM = append([]entity.BOMEntry(nil), p.BOM...)
		c.products[id] = &cp
	}
	for id, m := range s.materials {
		cm := *m
		c.materials[id] = &cm
	}
	for id, o := range s.orders {
		co := *o
		co.Items = make([]entity.OrderItem, len(o.Items))
		for i, it := range o.Items {
			ci := it
			ci.Materials = append([]entity.OrderItemMaterial(nil), it.Materials...)
			co.Items[i] = ci
		}
		c.orders[id] = &co
	}
	for uid, lines := range s.cart {
		cl := make([]*entity.CartLine, len(lines))
		for i, l := range lines {
			copied := *l
			cl[i] = &copied
		}
		c.cart[uid] = cl
	}
	return c
}

// ── ProductRepository ────────────────────────────────────────────────────────

func (s *memStore) Create(p *entity.Product) error { s.products[p.ID] = p; return nil }

func (s *memStore) GetByID(id string) (*entity.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) GetWithBOM(id string) (*entity.Product, error) {
	return s.GetWithBOMForUpdate(id)
}

func (s *memStore) GetWithBOMForUpdate(id string) (*entity.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.BOM = make([]entity.BOMEntry, len(p.BOM))
	for i, e := range p.BOM {
		entry := e
		if mat, ok := s.materials[e.MaterialID]; ok {
			entry.MaterialStock = mat.Stock
			entry.MaterialName = mat.Name
		}
		cp.BOM[i] = entry
	}
	return &cp, nil
}

func (s *memStore) List(bool, string, int, int) ([]*entity.Product, error) { return nil, nil }
func (s *memStore) Update(*entity.Product) error                           { return nil }
func (s *memStore) SetBOM(string, []entity.BOMEntry) error                 { return nil }
func (s *memStore) Delete(string) error                                    { return nil }

func (s *memStore) DecrementStock(productID string, amount int) error {
	p, ok := s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock < amount {
		return domain.ErrInsufficientStock
	}
	p.Stock -= amount
	return nil
}

func (s *memStore) IncrementStock(productID string, amount int) error {
	if productID == s.failProductIncrement {
		return errors.New("fallo simulado al restaurar stock")
	}
	p, ok := s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += amount
	return nil
}

// ── MaterialRepository (métodos con nombre distinto vía wrapper) ─────────────

// materialRepoView adapta memStore a repository.MaterialRepository: los métodos
// de stock de producto y material comparten nombre pero operan sobre mapas distintos.
type materialRepoView struct{ s *memStore }

func (v materialRepoView) Create(m *entity.Material) error { v.s.materials[m.ID] = m; return nil }

func (v materialRepoView) GetByID(id string) (*entity.Material, error) {
	m, ok := v.s.materials[id]
	if !ok {
		return nil, nil
	}
	cm := *m
	return &cm, nil
}

func (v materialRepoView) List(int, int) ([]*entity.Material, error) { return nil, nil }
func (v materialRepoView) ListLow() ([]*entity.Material, error)      { return nil, nil }
func (v materialRepoView) Update(*entity.Material) error             { return nil }
func (v materialRepoView) Delete(string) error                       { return nil }

func (v materialRepoView) DecrementStock(materialID string, amount int) error {
	m, ok := v.s.materials[materialID]
	if !ok {
		return domain.ErrNotFound
	}
	if m.Stock < amount {
		return domain.ErrInsufficientStock
	}
	m.Stock -= amount
	return nil
}

func (v materialRepoView) IncrementStock(materialID string, amount int) error {
	m, ok := v.s.materials[materialID]
	if !ok {
		return domain.ErrNotFound
	}
	m.Stock += amount
	return nil
}

// ── OrderRepository ──────────────────────────────────────────────────────────

type orderRepoView struct{ s *memStore }

func (v orderRepoView) Create(o *entity.Order) error {
	co := *o
	co.Items = nil
	v.s.orders[o.ID] = &co
	return nil
}

func (v orderRepoView) CreateItem(item *entity.OrderItem) error {
	o, ok := v.s.orders[item.OrderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Items = append(o.Items, *item)
	return nil
}

func (v orderRepoView) CreateItemMaterial(m *entity.OrderItemMaterial) error {
	for _, o := range v.s.orders {
		for i := range o.Items {
			if o.Items[i].ID == m.OrderItemID {
				o.Items[i].Materials = append(o.Items[i].Materials, *m)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (v orderRepoView) GetByIDAndUser(orderID, userID string) (*entity.Order, error) {
	return v.GetByIDAndUserForUpdate(orderID, userID)
}

func (v orderRepoView) GetByIDAndUserForUpdate(orderID, userID string) (*entity.Order, error) {
	o, ok := v.s.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, nil
	}
	co := *o
	co.Items = make([]entity.OrderItem, len(o.Items))
	for i, it := range o.Items {
		ci := it
		ci.Materials = append([]entity.OrderItemMaterial(nil), it.Materials...)
		co.Items[i] = ci
	}
	return &co, nil
}

func (v orderRepoView) ListByUser(string) ([]*entity.Order, error) { return nil, nil }

func (v orderRepoView) UpdateStatus(orderID, status string) error {
	o, ok := v.s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (v orderRepoView) CountByStatus(string) (map[string]int, error) { return nil, nil }

// ── CartRepository ───────────────────────────────────────────────────────────

type cartRepoView struct{ s *memStore }

func (v cartRepoView) ListByUser(userID string) ([]*entity.CartLine, error) {
	lines := v.s.cart[userID]
	out := make([]*entity.CartLine, len(lines))
	for i, l := range lines {
		copied := *l
		out[i] = &copied
	}
	return out, nil
}

func (v cartRepoView) GetLine(string, string) (*entity.CartLine, error) { return nil, nil }
func (v cartRepoView) Add(line *entity.CartLine) error {
	v.s.cart[line.UserID] = append(v.s.cart[line.UserID], line)
	return nil
}
func (v cartRepoView) UpdateQuantity(string, string, int) error { return nil }
func (v cartRepoView) Remove(string, string) error              { return nil }

func (v cartRepoView) Clear(userID string) error {
	delete(v.s.cart, userID)
	return nil
}

// ── TxRunner con snapshot/rollback ───────────────────────────────────────────

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
) error) error {
	snapshot := r.store.clone()
	err := fn(r.store, materialRepoView{r.store}, orderRepoView{r.store}, cartRepoView{r.store})
	if err != nil {
		*r.store = *snapshot
		return err
	}
	return nil
}

// Comprobación estática: memStore y sus vistas implementan los puertos.
var (
	_ repository.ProductRepository  = (*memStore)(nil)
	_ repository.MaterialRepository = materialRepoView{}
	_ repository.OrderRepository    = orderRepoView{}
	_ repository.CartRepository     = cartRepoView{}
	_ checkout.TxRunner             = (*memTxRunner)(nil)
)

// ── Helpers comunes ──────────────────────────────────────────────────────────

const testUserID = "user-1"

func testRates() checkout.ShippingRates {
	return checkout.ShippingRates{
		Standard: decimal.NewFromInt(10),
		Express:  decimal.NewFromInt(20),
		NextDay:  decimal.NewFromInt(30),
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func addProduct(s *memStore, id, name string, price int64, stock int, bom ...entity.BOMEntry) {
	s.products[id] = &entity.Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
		Stock: stock,
		BOM:   bom,
	}
}

func addMaterial(s *memStore, id, name string, stock int) {
	s.materials[id] = &entity.Material{ID: id, Name: name, Stock: stock, Unit: "pcs"}
}

func addCartLine(s *memStore, userID, productID string, qty int) {
	s.cart[userID] = append(s.cart[userID], &entity.CartLine{
		ID:        "line-" + productID,
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	})
}

func validInput() checkout.PlaceOrderInput {
	return checkout.PlaceOrderInput{
		ShippingAddress: []byte(`{"street":"Calle 10 #4-21","city":"Bogotá"}`),
		PaymentMethod:   "card",
		DeliveryMethod:  entity.DeliveryStandard,
	}
}
