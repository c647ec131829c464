package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/smallbiznis/ispdesk/internal/activity/domain"
	analyticsdomain "github.com/smallbiznis/ispdesk/internal/analytics/domain"
	campaigndomain "github.com/smallbiznis/ispdesk/internal/campaign/domain"
	"github.com/smallbiznis/ispdesk/internal/config"
	customerdomain "github.com/smallbiznis/ispdesk/internal/customer/domain"
	"github.com/smallbiznis/ispdesk/internal/observability"
	obslogger "github.com/smallbiznis/ispdesk/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/ispdesk/internal/observability/metrics"
	obstracing "github.com/smallbiznis/ispdesk/internal/observability/tracing"
	paymentdomain "github.com/smallbiznis/ispdesk/internal/payment/domain"
	plandomain "github.com/smallbiznis/ispdesk/internal/plan/domain"
	reminderdomain "github.com/smallbiznis/ispdesk/internal/reminder/domain"
	"github.com/smallbiznis/ispdesk/internal/report"
	settingsdomain "github.com/smallbiznis/ispdesk/internal/settings/domain"
	shopdomain "github.com/smallbiznis/ispdesk/internal/shop/domain"
	ticketdomain "github.com/smallbiznis/ispdesk/internal/ticket/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, m *obsmetrics.Metrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(m.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m.Enabled() {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Params struct {
	fx.In

	Engine    *gin.Engine
	Log       *zap.Logger
	Shops     shopdomain.Service
	Customers customerdomain.Service
	Plans     plandomain.Service
	Payments  paymentdomain.Service
	Tickets   ticketdomain.Service
	Campaigns campaigndomain.Service
	Activity  activitydomain.Service
	Reminders reminderdomain.Service
	Settings  settingsdomain.Service
	Analytics analyticsdomain.Service
	Reports   report.Provider
}

type Server struct {
	engine       *gin.Engine
	log          *zap.Logger
	shopSvc      shopdomain.Service
	customerSvc  customerdomain.Service
	planSvc      plandomain.Service
	paymentSvc   paymentdomain.Service
	ticketSvc    ticketdomain.Service
	campaignSvc  campaigndomain.Service
	activitySvc  activitydomain.Service
	reminderSvc  reminderdomain.Service
	settingsSvc  settingsdomain.Service
	analyticsSvc analyticsdomain.Service
	reports      report.Provider
}

func NewServer(p Params) *Server {
	return &Server{
		engine:       p.Engine,
		log:          p.Log.Named("http.server"),
		shopSvc:      p.Shops,
		customerSvc:  p.Customers,
		planSvc:      p.Plans,
		paymentSvc:   p.Payments,
		ticketSvc:    p.Tickets,
		campaignSvc:  p.Campaigns,
		activitySvc:  p.Activity,
		reminderSvc:  p.Reminders,
		settingsSvc:  p.Settings,
		analyticsSvc: p.Analytics,
		reports:      p.Reports,
	}
}

func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api")

	api.POST("/shops", s.CreateShop)
	api.GET("/shops/:id", s.GetShop)

	shop := api.Group("", s.ShopRequired())

	shop.GET("/customers", s.ListCustomers)
	shop.POST("/customers", s.CreateCustomer)
	shop.GET("/customers/:id", s.GetCustomer)
	shop.PATCH("/customers/:id", s.UpdateCustomer)
	shop.DELETE("/customers/:id", s.DeleteCustomer)

	shop.GET("/plans", s.ListPlans)
	shop.POST("/plans", s.CreatePlan)
	shop.GET("/plans/:id", s.GetPlan)
	shop.PATCH("/plans/:id", s.UpdatePlan)
	shop.DELETE("/plans/:id", s.DeletePlan)

	shop.GET("/payments", s.ListPayments)
	shop.POST("/payments", s.RecordPayment)
	shop.GET("/payments/dues", s.PaymentDues)
	shop.GET("/payments/dues.pdf", s.PaymentDuesPDF)
	shop.DELETE("/payments/:id", s.DeletePayment)

	shop.GET("/tickets", s.ListTickets)
	shop.POST("/tickets", s.CreateTicket)
	shop.PATCH("/tickets/:id/status", s.UpdateTicketStatus)

	shop.GET("/campaigns", s.ListCampaigns)
	shop.POST("/campaigns", s.QueueCampaign)
	shop.GET("/campaigns/stats", s.CampaignStats)

	shop.GET("/activity", s.RecentActivity)
	shop.GET("/reminders", s.ListReminders)

	shop.GET("/settings", s.GetSettings)
	shop.PUT("/settings", s.SaveSettings)

	shop.GET("/dashboard", s.Dashboard)
	shop.GET("/analytics", s.Analytics)
	shop.GET("/analytics/suggestions", s.Suggestions)
	shop.GET("/analytics/suggestions.pdf", s.SuggestionsPDF)
	shop.POST("/assistant", s.Assistant)
}
