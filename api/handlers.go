package api

import (
	"errors"
	"net/http"

	"github.com/banachtech/quantmodeling/pricer"
	"github.com/banachtech/quantmodeling/pricing"
	"github.com/gin-gonic/gin"
)

// abortPricingError maps library errors to HTTP statuses: invalid input
// to 400, unsupported combinations to 422, anything else to 500.
func abortPricingError(c *gin.Context, err error) {
	var invalid *pricing.InvalidInputError
	var unsupported *pricing.UnsupportedInstrumentError
	switch {
	case errors.As(err, &invalid):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
	case errors.As(err, &unsupported):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse(err))
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err))
	}
}

func engineKind(s string) pricer.EngineKind {
	if s == "" {
		return pricer.Analytic
	}
	return pricer.EngineKind(s)
}

func (server *Server) engines(c *gin.Context) {
	keys := server.registry.Keys()
	out := make([]gin.H, 0, len(keys))
	for _, k := range keys {
		out = append(out, gin.H{"instrument": k.Instrument, "model": k.Model, "engine": k.Engine})
	}
	c.JSON(http.StatusOK, gin.H{"supported": out})
}

type vanillaRequest struct {
	pricer.VanillaBSInput
	IsAmerican bool   `json:"is_american"`
	Engine     string `json:"engine"`
}

func (server *Server) priceVanilla(c *gin.Context) {
	var req vanillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	var pr pricer.Request
	if req.IsAmerican {
		pr = pricer.Request{
			Instrument: pricer.EquityAmericanVanilla,
			Model:      pricer.BlackScholes,
			Engine:     engineKind(req.Engine),
			Input: pricer.AmericanVanillaBSInput{
				Spot:          req.Spot,
				Strike:        req.Strike,
				Maturity:      req.Maturity,
				Rate:          req.Rate,
				Dividend:      req.Dividend,
				Vol:           req.Vol,
				IsCall:        req.IsCall,
				TreeSteps:     req.TreeSteps,
				PDESpaceSteps: req.PDESpaceSteps,
				PDETimeSteps:  req.PDETimeSteps,
			},
		}
		if req.Engine == "" {
			pr.Engine = pricer.BinomialTree
		}
	} else {
		pr = pricer.Request{
			Instrument: pricer.EquityVanilla,
			Model:      pricer.BlackScholes,
			Engine:     engineKind(req.Engine),
			Input:      req.VanillaBSInput,
		}
	}

	result, err := server.registry.Price(pr)
	if err != nil {
		abortPricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type asianRequest struct {
	pricer.AsianBSInput
	Engine string `json:"engine"`
}

func (server *Server) priceAsian(c *gin.Context) {
	var req asianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	result, err := server.registry.Price(pricer.Request{
		Instrument: pricer.EquityAsian,
		Model:      pricer.BlackScholes,
		Engine:     engineKind(req.Engine),
		Input:      req.AsianBSInput,
	})
	if err != nil {
		abortPricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (server *Server) priceFuture(c *gin.Context) {
	var req pricer.EquityFutureInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	result, err := server.registry.Price(pricer.Request{
		Instrument: pricer.EquityFuture,
		Model:      pricer.BlackScholes,
		Engine:     pricer.Analytic,
		Input:      req,
	})
	if err != nil {
		abortPricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (server *Server) priceZeroCouponBond(c *gin.Context) {
	var req pricer.ZeroCouponBondInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	result, err := server.registry.Price(pricer.Request{
		Instrument: pricer.ZeroCouponBond,
		Model:      pricer.FlatRate,
		Engine:     pricer.Analytic,
		Input:      req,
	})
	if err != nil {
		abortPricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (server *Server) priceFixedRateBond(c *gin.Context) {
	var req pricer.FixedRateBondInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	result, err := server.registry.Price(pricer.Request{
		Instrument: pricer.FixedRateBond,
		Model:      pricer.FlatRate,
		Engine:     pricer.Analytic,
		Input:      req,
	})
	if err != nil {
		abortPricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
