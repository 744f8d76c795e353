package app

import (
	"context"

	"github.com/ThathsaraniLiyanage/MiniSO-sales-order-management-system/internal/core"
)

type appService struct {
	orders  core.OrderService
	clients core.ClientService
	items   core.ItemService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(orders core.OrderService, clients core.ClientService, items core.ItemService) ApplicationService {
	return &appService{orders: orders, clients: clients, items: items}
}

func orderInput(req OrderRequest) core.OrderInput {
	in := core.OrderInput{
		InvoiceNo:   req.InvoiceNo,
		InvoiceDate: req.InvoiceDate,
		ReferenceNo: req.ReferenceNo,
		ClientID:    req.ClientID,
	}
	for _, l := range req.Lines {
		in.Lines = append(in.Lines, core.LineInput{
			ItemID:   l.ItemID,
			Note:     l.Note,
			Quantity: l.Quantity,
			TaxRate:  l.TaxRate,
		})
	}
	return in
}

func (s *appService) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error) {
	order, err := s.orders.Create(ctx, orderInput(req))
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) ReplaceOrder(ctx context.Context, orderID int, req OrderRequest) (*OrderResult, error) {
	order, err := s.orders.Replace(ctx, orderID, orderInput(req))
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) DeleteOrder(ctx context.Context, orderID int) error {
	return s.orders.SoftDelete(ctx, orderID)
}

func (s *appService) GetOrder(ctx context.Context, orderID int) (*OrderResult, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) ListOrders(ctx context.Context) (*OrderListResult, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Orders: orders}, nil
}

func (s *appService) CreateClient(ctx context.Context, req ClientRequest) (*ClientResult, error) {
	client, err := s.clients.Create(ctx, core.ClientInput(req))
	if err != nil {
		return nil, err
	}
	return &ClientResult{Client: client}, nil
}

func (s *appService) UpdateClient(ctx context.Context, clientID int, req ClientRequest) (*ClientResult, error) {
	client, err := s.clients.Update(ctx, clientID, core.ClientInput(req))
	if err != nil {
		return nil, err
	}
	return &ClientResult{Client: client}, nil
}

func (s *appService) GetClient(ctx context.Context, clientID int) (*ClientResult, error) {
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &ClientResult{Client: client}, nil
}

func (s *appService) ListClients(ctx context.Context) (*ClientListResult, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ClientListResult{Clients: clients}, nil
}

func (s *appService) DeleteClient(ctx context.Context, clientID int) error {
	return s.clients.Deactivate(ctx, clientID)
}

func (s *appService) CreateItem(ctx context.Context, req ItemRequest) (*ItemResult, error) {
	item, err := s.items.Create(ctx, core.ItemInput(req))
	if err != nil {
		return nil, err
	}
	return &ItemResult{Item: item}, nil
}

func (s *appService) UpdateItem(ctx context.Context, itemID int, req ItemRequest) (*ItemResult, error) {
	item, err := s.items.Update(ctx, itemID, core.ItemInput(req))
	if err != nil {
		return nil, err
	}
	return &ItemResult{Item: item}, nil
}

func (s *appService) GetItem(ctx context.Context, itemID int) (*ItemResult, error) {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &ItemResult{Item: item}, nil
}

func (s *appService) ListItems(ctx context.Context) (*ItemListResult, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ItemListResult{Items: items}, nil
}

func (s *appService) DeleteItem(ctx context.Context, itemID int) error {
	return s.items.Deactivate(ctx, itemID)
}
