package server

import (
	"plan-fulfillment/internal/handler"
	custommw "plan-fulfillment/internal/middleware"
	"plan-fulfillment/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	webhookHandler *handler.WebhookHandler
	orderHandler   *handler.OrderHandler
}

func NewServer(fulfillmentService service.FulfillmentService, orderService service.OrderService, webhookToken string) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		webhookHandler: handler.NewWebhookHandler(fulfillmentService),
		orderHandler:   handler.NewOrderHandler(orderService),
	}

	s.setupRoutes(webhookToken)
	return s
}

func (s *Server) setupRoutes(webhookToken string) {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.POST("/orders", s.orderHandler.PlaceOrder)
	api.GET("/orders/:order_id", s.orderHandler.GetOrder)

	// -------- payment gateway callbacks --------
	webhooks := api.Group("/webhooks", custommw.GatewayAuth(webhookToken))
	webhooks.POST("/payment", s.webhookHandler.PaymentWebhook)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
