package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/offrampkit/offramp-widget-backend/api/apistrings"
	basemodels "github.com/offrampkit/offramp-widget-backend/models"
	"github.com/offrampkit/offramp-widget-backend/providers"
	"github.com/offrampkit/offramp-widget-backend/providers/blindpay"
)

// Instance exposes operator-side listings over the payments instance. These
// are not session scoped; they back the host's admin views.
type Instance struct {
	server *Server
}

func (i Instance) router(server *Server) {
	i.server = server

	serverGroupV1 := server.router.Group("/api/v1/instance")
	serverGroupV1.GET("/members", i.members)
	serverGroupV1.GET("/receivers", i.receivers)
}

func (i *Instance) members(ctx *gin.Context) {
	if provider, exists := i.server.provider.GetProvider(providers.BlindPay); exists {
		bp, ok := provider.(*blindpay.Provider)
		if ok {
			env, err := bp.GetMembers(ctx.Request.Context())
			if err != nil {
				i.server.logger.Log(logrus.ErrorLevel, err.Error())
				ctx.JSON(http.StatusBadGateway, basemodels.NewError(apistrings.RequestFailed))
				return
			}
			if env.Error != nil {
				ctx.JSON(http.StatusBadRequest, basemodels.NewError(env.Error.Message))
				return
			}

			ctx.JSON(http.StatusOK, basemodels.NewSuccess("instance members", env.Data))
			return
		}
	}

	ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
}

func (i *Instance) receivers(ctx *gin.Context) {
	if provider, exists := i.server.provider.GetProvider(providers.BlindPay); exists {
		bp, ok := provider.(*blindpay.Provider)
		if ok {
			env, err := bp.GetReceivers(ctx.Request.Context())
			if err != nil {
				i.server.logger.Log(logrus.ErrorLevel, err.Error())
				ctx.JSON(http.StatusBadGateway, basemodels.NewError(apistrings.RequestFailed))
				return
			}
			if env.Error != nil {
				ctx.JSON(http.StatusBadRequest, basemodels.NewError(env.Error.Message))
				return
			}

			ctx.JSON(http.StatusOK, basemodels.NewSuccess("instance receivers", env.Data))
			return
		}
	}

	ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
}
