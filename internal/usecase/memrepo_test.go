package usecase_test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"bibigin/internal/domain/model"
	repo "bibigin/internal/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// =====================
// テスト用インメモリDB
// =====================

// 全テーブルを1つのmutexで守るので、トランザクションは完全に直列化される。
// fnがエラーを返したら変更を捨てる（ロールバック相当）。
type memState struct {
	users       map[string]model.User
	products    map[string]model.Product
	orders      map[string]model.Order
	items       map[string][]model.OrderItem
	adjustments []model.InventoryAdjustment
}

func newMemState() *memState {
	return &memState{
		users:    map[string]model.User{},
		products: map[string]model.Product{},
		orders:   map[string]model.Order{},
		items:    map[string][]model.OrderItem{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.users {
		v.Orders = append(pq.StringArray{}, v.Orders...)
		c.users[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]model.OrderItem{}, v...)
	}
	c.adjustments = append([]model.InventoryAdjustment{}, s.adjustments...)
	return c
}

type memStore struct {
	mu    sync.Mutex
	state *memState
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(&memTxRepos{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// トランザクション外からの覗き見（assert用）
func (s *memStore) user(id string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.state.users[id]
	return u, ok
}

func (s *memStore) product(id string) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.products[id]
	return p, ok
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.orders)
}

func (s *memStore) seedUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.users[u.ID] = u
}

func (s *memStore) seedProduct(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.products[p.ID] = p
}

type memTxRepos struct{ st *memState }

func (r *memTxRepos) Orders() repo.OrderRepository         { return &memOrders{st: r.st} }
func (r *memTxRepos) OrderItems() repo.OrderItemRepository { return &memItems{st: r.st} }
func (r *memTxRepos) Products() repo.ProductRepository     { return &memProducts{st: r.st} }
func (r *memTxRepos) Inventory() repo.InventoryRepository  { return &memInventory{st: r.st} }
func (r *memTxRepos) Users() repo.UserRepository           { return &memUsers{st: r.st} }

type memUsers struct{ st *memState }

func (m *memUsers) Create(ctx context.Context, user *model.User) error {
	m.st.users[user.ID] = *user
	return nil
}

func (m *memUsers) FindByID(ctx context.Context, userID string) (*model.User, error) {
	u, ok := m.st.users[userID]
	if !ok {
		return nil, nil
	}
	u.Orders = append(pq.StringArray{}, u.Orders...)
	return &u, nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.st.users {
		if u.Email == email {
			u.Orders = append(pq.StringArray{}, u.Orders...)
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(ctx context.Context, user *model.User) error {
	m.st.users[user.ID] = *user
	return nil
}

func (m *memUsers) AppendOrder(ctx context.Context, userID string, orderID string, total decimal.Decimal) error {
	u, ok := m.st.users[userID]
	if !ok {
		return repo.ErrUserNotFound
	}
	u.Orders = append(u.Orders, orderID)
	u.TotalSpent = u.TotalSpent.Add(total)
	m.st.users[userID] = u
	return nil
}

func (m *memUsers) IncrementTokenVersion(ctx context.Context, userID string) error {
	u, ok := m.st.users[userID]
	if !ok {
		return repo.ErrUserNotFound
	}
	u.TokenVersion++
	m.st.users[userID] = u
	return nil
}

type memProducts struct{ st *memState }

func (m *memProducts) FindByID(ctx context.Context, productID string) (model.Product, error) {
	p, ok := m.st.products[productID]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (m *memProducts) ListActive(ctx context.Context) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range m.st.products {
		if p.Status == model.ProductStatusActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memProducts) Create(ctx context.Context, p model.Product) error {
	m.st.products[p.ID] = p
	return nil
}

type memInventory struct{ st *memState }

func (m *memInventory) SetStock(ctx context.Context, productID string, newStock int64) error {
	p, ok := m.st.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Stock = newStock
	m.st.products[productID] = p
	return nil
}

func (m *memInventory) DecreaseStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error) {
	p, ok := m.st.products[productID]
	if !ok {
		return false, nil
	}
	if p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	m.st.products[productID] = p
	return true, nil
}

func (m *memInventory) IncreaseStock(ctx context.Context, productID string, qty int64) error {
	p, ok := m.st.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Stock += qty
	m.st.products[productID] = p
	return nil
}

func (m *memInventory) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	m.st.adjustments = append(m.st.adjustments, adjustment)
	return nil
}

type memOrders struct{ st *memState }

func (m *memOrders) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	o, ok := m.st.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (m *memOrders) ListByCustomerID(ctx context.Context, customerID string) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range m.st.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memOrders) Create(ctx context.Context, order model.Order) error {
	m.st.orders[order.ID] = order
	return nil
}

func (m *memOrders) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	o, ok := m.st.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	m.st.orders[orderID] = o
	return nil
}

func (m *memOrders) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	all := []model.Order{}
	for _, o := range m.st.orders {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		if f.UserID != "" && o.CustomerID != f.UserID {
			continue
		}
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	start := (f.Page - 1) * f.Limit
	if start >= len(all) {
		return []model.Order{}, total, nil
	}
	end := start + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

type memItems struct{ st *memState }

func (m *memItems) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	for i := range items {
		items[i].OrderID = orderID
	}
	m.st.items[orderID] = append(m.st.items[orderID], items...)
	return nil
}

func (m *memItems) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	return append([]model.OrderItem{}, m.st.items[orderID]...), nil
}

// =====================
// Clock / IDGen
// =====================

// 呼ぶたびに1秒進む
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGen) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return "id-" + strconv.Itoa(g.n)
}
