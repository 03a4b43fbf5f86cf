package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/offrampkit/offramp-widget-backend/api/apistrings"
	apimodels "github.com/offrampkit/offramp-widget-backend/api/models"
	basemodels "github.com/offrampkit/offramp-widget-backend/models"
	"github.com/offrampkit/offramp-widget-backend/providers/blindpay"
	"github.com/offrampkit/offramp-widget-backend/services/flow"
	"github.com/offrampkit/offramp-widget-backend/services/forms"
	"github.com/offrampkit/offramp-widget-backend/services/session"
	"github.com/offrampkit/offramp-widget-backend/services/withdraw"
)

// DefaultQuoteAmount is used when the host omits an amount from the quote
// request.
const DefaultQuoteAmount = "500"

type Widget struct {
	server *Server
}

func (w Widget) router(server *Server) {
	w.server = server

	serverGroupV1 := server.router.Group("/api/v1/widget")
	serverGroupV1.POST("/sessions", w.createSession)

	sessionGroup := serverGroupV1.Group("/:session", server.SessionMiddleware())
	sessionGroup.GET("/view", w.view)
	sessionGroup.POST("/start", w.start)
	sessionGroup.POST("/close", w.close)
	sessionGroup.POST("/modal/open", w.openModal)
	sessionGroup.POST("/modal/cancel", w.cancelModal)
	sessionGroup.POST("/receiver", w.createReceiver)
	sessionGroup.POST("/bank-accounts", w.addBankAccount)
	sessionGroup.POST("/bank-accounts/remove", w.removeBankAccount)
	sessionGroup.POST("/bank-accounts/:account/detail", w.openDetail)
	sessionGroup.POST("/withdrawals/quote", w.quote)
	sessionGroup.POST("/withdrawals/confirm", w.beginConfirm)
	sessionGroup.POST("/withdrawals/submit", w.submitWithdrawal)
}

func widgetFrom(ctx *gin.Context) *flow.Widget {
	return ctx.MustGet("widget").(*flow.Widget)
}

// businessMessage maps recognized backend messages onto user hints; anything
// unrecognized passes through verbatim.
func businessMessage(msg string) string {
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "kyc") || strings.Contains(lower, "tier") {
		return apistrings.KYCTierHint
	}
	return msg
}

// respondError maps the error taxonomy onto HTTP statuses: validation and
// state-machine guards are the caller's fault, in-band business errors pass
// through verbatim, transport failures read as a bad gateway.
func (w *Widget) respondError(ctx *gin.Context, err error) {
	var missing *forms.MissingFieldError
	if errors.As(err, &missing) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(missing.Error()))
		return
	}

	var apiErr *blindpay.APIError
	if errors.As(err, &apiErr) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(businessMessage(apiErr.Message)))
		return
	}

	var reqErr *blindpay.RequestError
	if errors.As(err, &reqErr) {
		w.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadGateway, basemodels.NewError(apistrings.RequestFailed))
		return
	}

	switch {
	case errors.Is(err, flow.ErrNoReceiver),
		errors.Is(err, flow.ErrNotOnDashboard),
		errors.Is(err, flow.ErrModalClosed),
		errors.Is(err, flow.ErrUnknownAccount),
		errors.Is(err, flow.ErrConfirmationMismatch),
		errors.Is(err, flow.ErrReceiverNotCreated),
		errors.Is(err, withdraw.ErrNoQuote),
		errors.Is(err, withdraw.ErrQuoteExpired):
		ctx.JSON(http.StatusConflict, basemodels.NewError(err.Error()))
	default:
		w.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
	}
}

func (w *Widget) respondView(ctx *gin.Context, widget *flow.Widget) {
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("widget state", apimodels.NewWidgetView(widget)))
}

// createSession exchanges a host-minted embed token for a widget session.
func (w *Widget) createSession(ctx *gin.Context) {
	request := struct {
		EmbedToken string `json:"embed_token" binding:"required"`
	}{}

	if err := ctx.ShouldBindJSON(&request); err != nil {
		w.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidEmbedToken))
		return
	}

	user, err := TokenController.VerifyToken(request.EmbedToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(err.Error()))
		return
	}

	widget := flow.NewWidget(session.NewID(), user.Email, user.SmartAddress, w.server.blindpay, w.server.logger)
	w.server.sessions.Put(widget)

	// Mount lookup; a failed fetch never blocks mounting.
	if err := widget.EnsureReceiver(ctx.Request.Context()); err != nil {
		w.server.logger.Log(logrus.WarnLevel, err.Error())
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("widget session created", apimodels.NewWidgetView(widget)))
}

func (w *Widget) view(ctx *gin.Context) {
	widget := widgetFrom(ctx)

	if err := widget.EnsureReceiver(ctx.Request.Context()); err != nil {
		w.server.logger.Log(logrus.WarnLevel, err.Error())
	}

	w.respondView(ctx, widget)
}

func (w *Widget) start(ctx *gin.Context) {
	widget := widgetFrom(ctx)

	if err := widget.StartClicked(ctx.Request.Context()); err != nil {
		w.respondError(ctx, err)
		return
	}
	w.respondView(ctx, widget)
}

func (w *Widget) close(ctx *gin.Context) {
	widget := widgetFrom(ctx)
	widget.Close()
	w.respondView(ctx, widget)
}

func (w *Widget) openModal(ctx *gin.Context) {
	request := struct {
		Modal string `json:"modal" binding:"required,oneof=adding removing"`
	}{}

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.ServerError))
		return
	}

	widget := widgetFrom(ctx)
	if err := widget.OpenModal(flow.Modal(request.Modal)); err != nil {
		w.respondError(ctx, err)
		return
	}
	w.respondView(ctx, widget)
}

func (w *Widget) cancelModal(ctx *gin.Context) {
	widget := widgetFrom(ctx)
	widget.CancelModal()
	w.respondView(ctx, widget)
}

func (w *Widget) createReceiver(ctx *gin.Context) {
	request := struct {
		Fields map[string]string `json:"fields" binding:"required"`
	}{}

	if err := ctx.ShouldBindJSON(&request); err != nil {
		w.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidReceiverInput))
		return
	}

	widget := widgetFrom(ctx)

	form := forms.NewReceiverForm(widget.Email())
	form.SetAll(request.Fields)

	if err := widget.CreateReceiver(ctx.Request.Context(), form, ctx.ClientIP()); err != nil {
		w.respondError(ctx, err)
		return
	}
	w.respondView(ctx, widget)
}

func (w *Widget) addBankAccount(ctx *gin.Context) {
	request := struct {
		Rail   string            `json:"rail" binding:"required"`
		Fields map[string]string `json:"fields" binding:"required"`
	}{}

	if err := ctx.ShouldBindJSON(&request); err != nil {
		w.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidBankAccountInput))
		return
	}

	form := forms.NewBankAccountForm(request.Rail)
	form.SetAll(request.Fields)

	widget := widgetFrom(ctx)
	if err := widget.AddBankAccount(ctx.Request.Context(), form); err != nil {
		w.respondError(ctx, err)
		return
	}
	w.respondView(ctx, widget)
}

func (w *Widget) removeBankAccount(ctx *gin.Context) {
	request := struct {
		TypedName string `json:"typed_name" binding:"required"`
	}{}

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidBankAccountInput))
		return
	}

	widget := widgetFrom(ctx)
	if err := widget.RemoveBankAccount(ctx.Request.Context(), request.TypedName); err != nil {
		w.respondError(ctx, err)
		return
	}
	w.respondView(ctx, widget)
}

func (w *Widget) openDetail(ctx *gin.Context) {
	widget := widgetFrom(ctx)

	if _, err := widget.OpenDetail(ctx.Param("account")); err != nil {
		w.respondError(ctx, err)
		return
	}
	w.respondView(ctx, widget)
}

func (w *Widget) quote(ctx *gin.Context) {
	request := struct {
		Amount string `json:"amount"`
	}{}

	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
			return
		}
	}
	if request.Amount == "" {
		request.Amount = DefaultQuoteAmount
	}

	widget := widgetFrom(ctx)
	if err := w.server.withdrawals.Quote(ctx.Request.Context(), widget, request.Amount); err != nil {
		w.respondError(ctx, err)
		return
	}
	w.respondView(ctx, widget)
}

func (w *Widget) beginConfirm(ctx *gin.Context) {
	widget := widgetFrom(ctx)

	if err := widget.BeginConfirm(); err != nil {
		w.respondError(ctx, err)
		return
	}
	w.respondView(ctx, widget)
}

func (w *Widget) submitWithdrawal(ctx *gin.Context) {
	widget := widgetFrom(ctx)

	receipt, err := w.server.withdrawals.Confirm(ctx.Request.Context(), widget)
	if err != nil {
		w.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("withdrawal submitted", receipt))
}
