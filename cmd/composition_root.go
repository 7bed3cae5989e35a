package cmd

import (
	"log/slog"

	httpin "pos/internal/adapters/in/http"
	"pos/internal/adapters/out/authz"
	"pos/internal/adapters/out/postgres"
	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/services"
	"pos/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	authorizer services.TransitionAuthorizer
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		authorizer: services.NewTransitionAuthorizer(authz.NewStaticOracle()),
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.authorizer, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAppendItemsCommandHandler() commands.AppendItemsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAppendItemsCommandHandler(f, c.authorizer, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.authorizer, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSubmitPaymentCommandHandler() commands.SubmitPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitPaymentCommandHandler(f, c.authorizer, c.logger)
}

func (c *CompositionRoot) CreateRequestCancellationCommandHandler() commands.RequestCancellationCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestCancellationCommandHandler(f, c.authorizer, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateResolveCancellationCommandHandler() commands.ResolveCancellationCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveCancellationCommandHandler(f, c.authorizer, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersBoardQueryHandler() queries.GetOrdersBoardQueryHandler {
	return queries.NewGetOrdersBoardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAppendItemsCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateSubmitPaymentCommandHandler(),
		c.CreateRequestCancellationCommandHandler(),
		c.CreateResolveCancellationCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetOrdersBoardQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.config.TaxRateBps,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
