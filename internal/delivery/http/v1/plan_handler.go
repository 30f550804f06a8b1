package v1

import (
	"io"
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody bounds gateway callbacks.
const maxWebhookBody = 64 << 10

type PlanHandler struct {
	planUC domain.PlanUsecase
}

func NewPlanHandler(public *gin.RouterGroup, protected *gin.RouterGroup, planUC domain.PlanUsecase) {
	handler := &PlanHandler{planUC: planUC}

	public.GET("/plans", handler.Catalog)
	public.POST("/payments/webhook", handler.Webhook)

	plans := protected.Group("/plans", middleware.RequireRole(domain.RoleRecruiter))
	{
		plans.GET("/me", handler.Current)
		plans.POST("/checkout", middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig()), handler.Checkout)
	}
}

// Catalog godoc
// @Summary      List purchasable plans
// @Tags         plans
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.CatalogEntry}
// @Router       /plans [get]
func (h *PlanHandler) Catalog(c *gin.Context) {
	response.Success(c, http.StatusOK, "Plan catalog", h.planUC.Catalog())
}

// Current godoc
// @Summary      Get my effective plan
// @Description  Free is returned when no plan is active.
// @Tags         plans
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CurrentPlan}
// @Router       /plans/me [get]
// @Security     BearerAuth
func (h *PlanHandler) Current(c *gin.Context) {
	plan, err := h.planUC.CurrentPlan(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current plan", plan)
}

// Checkout godoc
// @Summary      Start a plan purchase
// @Description  Creates a pending payment. The gateway confirms it through the webhook.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CheckoutRequest  true  "Plan"
// @Success      201   {object}  response.Response{data=domain.Payment}
// @Failure      400   {object}  response.Response
// @Router       /plans/checkout [post]
// @Security     BearerAuth
func (h *PlanHandler) Checkout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	payment, err := h.planUC.Checkout(c.Request.Context(), c.GetString(string(domain.KeyUserID)), req.Plan)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Payment created", payment)
}

// Webhook godoc
// @Summary      Payment gateway callback
// @Description  X-Signature is the hex HMAC-SHA256 of the raw body.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        X-Signature  header    string                       true  "Body signature"
// @Param        body         body      domain.PaymentWebhookPayload  true  "Event"
// @Success      200          {object}  response.Response
// @Failure      401          {object}  response.Response
// @Router       /payments/webhook [post]
func (h *PlanHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.Error(apperror.BadRequest("Could not read request body"))
		return
	}

	if err := h.planUC.HandleWebhook(c.Request.Context(), body, c.GetHeader("X-Signature")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Webhook processed", nil)
}
