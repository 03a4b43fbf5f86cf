package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/offrampkit/offramp-widget-backend/models"
	"github.com/offrampkit/offramp-widget-backend/providers"
	"github.com/offrampkit/offramp-widget-backend/providers/blindpay"
	"github.com/offrampkit/offramp-widget-backend/services/flow"
	"github.com/offrampkit/offramp-widget-backend/services/monitoring/logging"
	"github.com/offrampkit/offramp-widget-backend/services/session"
	"github.com/offrampkit/offramp-widget-backend/services/wallet"
	"github.com/offrampkit/offramp-widget-backend/services/withdraw"
	"github.com/offrampkit/offramp-widget-backend/utils"
)

// The flow layer only sees the API slice of the provider.
var _ flow.API = (*blindpay.Provider)(nil)

// / If there's a better place to access this
// / TODO, I feel the config should be the one accessible like this
var TokenController *utils.JWTToken

type Server struct {
	router      *gin.Engine
	config      *utils.Config
	logger      *logging.Logger
	provider    *providers.ProviderService
	blindpay    *blindpay.Provider
	sessions    *session.Store
	withdrawals *withdraw.Service
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	g := gin.Default()
	l := logging.NewLogger(c)
	p := providers.NewProviderService()

	bp := blindpay.NewProvider(c, l)
	p.AddProvider(bp)

	relay := wallet.NewRelaySender(c, l)

	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	TokenController = utils.NewJWTToken(c)

	return &Server{
		router:      g,
		config:      c,
		logger:      l,
		provider:    p,
		blindpay:    bp,
		sessions:    session.NewStore(time.Duration(c.SessionTTLMinutes) * time.Minute),
		withdrawals: withdraw.NewService(bp, relay, l),
	}
}

func (s *Server) Start() {

	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to the Offramp Widget!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	Widget{}.router(s)
	Schema{}.router(s)
	Instance{}.router(s)

	s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}
