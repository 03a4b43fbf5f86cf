package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/offrampkit/offramp-widget-backend/api/apistrings"
	basemodels "github.com/offrampkit/offramp-widget-backend/models"
	"github.com/offrampkit/offramp-widget-backend/services/schema"
)

// Schema serves the form definitions the widget renders dynamically.
type Schema struct {
	server *Server
}

func (s Schema) router(server *Server) {
	s.server = server

	serverGroupV1 := server.router.Group("/api/v1/schema")
	serverGroupV1.GET("/kyc/:tier/:entity", s.kycFields)
	serverGroupV1.GET("/bank-account/:rail", s.bankAccountFields)
	serverGroupV1.GET("/rails", s.rails)
	serverGroupV1.GET("/tier", s.tier)
}

func (s *Schema) kycFields(ctx *gin.Context) {
	key := schema.KYCKey(schema.Tier(ctx.Param("tier")), schema.Entity(ctx.Param("entity")))

	fields := schema.Fields(schema.DomainKYC, key)
	if len(fields) == 0 {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UnknownSchemaKey))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("kyc fields", fields))
}

func (s *Schema) bankAccountFields(ctx *gin.Context) {
	rail := ctx.Param("rail")

	fields := schema.Fields(schema.DomainBankAccount, rail)
	if len(fields) == 0 {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UnknownRail))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("bank account fields", fields))
}

// rails lists the supported rails with their display locales, in
// presentation order.
func (s *Schema) rails(ctx *gin.Context) {
	type railView struct {
		Rail string `json:"rail"`
		schema.RailLocale
	}

	out := make([]railView, 0, len(schema.Rails()))
	for _, rail := range schema.Rails() {
		out = append(out, railView{
			Rail:       rail,
			RailLocale: schema.LocaleFor(rail),
		})
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("supported rails", out))
}

// tier resolves the jurisdiction policy for a country.
func (s *Schema) tier(ctx *gin.Context) {
	tier, entity := schema.TierFor(ctx.Query("country"))

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("kyc tier", gin.H{
		"tier":   tier,
		"entity": entity,
	}))
}
