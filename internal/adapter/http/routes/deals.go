package routes

import (
	"roofing_crm/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathDeals    = "/deals"
	PathPins     = "/pins"
	PathStatuses = "/statuses"
)

func addDealRoutes(rg *gin.RouterGroup, dealHandler *handlers.DealHandler, paymentHandler *handlers.PaymentHandler) {
	rg.GET(PathStatuses, dealHandler.ListStatuses)

	deals := rg.Group(PathDeals)
	{
		deals.POST("", dealHandler.CreateDeal)
		deals.GET("/:id", dealHandler.GetDeal)
		deals.PATCH("/:id", dealHandler.UpdateDeal)
		deals.POST("/:id/signature", dealHandler.SignContract)

		deals.POST("/:id/assets/:kind", dealHandler.AddAsset)
		deals.DELETE("/:id/assets/:kind", dealHandler.RemoveAsset)

		deals.GET("/:id/commission", dealHandler.GetCommission)
		deals.PUT("/:id/commission/override", dealHandler.SetCommissionOverride)
		deals.DELETE("/:id/commission/override", dealHandler.ClearCommissionOverride)
		deals.POST("/:id/commission/paid", dealHandler.MarkCommissionPaid)
		deals.POST("/:id/financials/unlock", dealHandler.UnlockFinancials)

		deals.GET("/:id/next-action", dealHandler.NextAction)
		deals.GET("/:id/pins", dealHandler.ListPins)

		deals.POST("/:id/payment-request", paymentHandler.RequestPayment)
		deals.GET("/:id/payments", paymentHandler.ListPayments)
	}
}

func addPinRoutes(rg *gin.RouterGroup, pinHandler *handlers.PinHandler) {
	pins := rg.Group(PathPins)
	{
		pins.GET("/:id", pinHandler.GetPin)
		pins.POST("/:id/convert", pinHandler.ConvertToDeal)
	}
}
