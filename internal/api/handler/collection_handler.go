package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"ecotrack/internal/store"
)

// Handler serves the aggregated collections over HTTP. It only reads: the
// pipeline is the sole writer, so every endpoint is a plain collection
// dump.
type Handler struct {
	store *store.Store
	log   *zap.Logger
}

func New(st *store.Store, log *zap.Logger) *Handler {
	return &Handler{store: st, log: log}
}

// collection writes all documents of one collection as a JSON array. A
// collection the pipeline has not built yet serves [] with 200.
func (h *Handler) collection(w http.ResponseWriter, r *http.Request, name string) {
	docs, err := h.store.Documents(r.Context(), name)
	if err != nil {
		h.log.Error("read collection", zap.String("collection", name), zap.Error(err))
		http.Error(w, "Failed to read collection", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}

// CommerceVolume serves the total commerce volume series
// @Summary Commerce volume series
// @Description Monthly total commerce sales volume index, one document per month
// @Tags commerce
// @Produce json
// @Success 200 {array} model.Document "Volume documents"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /commerce/volume/series [get]
func (h *Handler) CommerceVolume(w http.ResponseWriter, r *http.Request) {
	h.collection(w, r, "commerce_volume")
}

// CommerceDivision serves volume grouped by commerce division
// @Summary Commerce volume by division
// @Description Monthly sales volume summed into the three commerce divisions
// @Tags commerce
// @Produce json
// @Success 200 {array} model.Document "Division documents"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /commerce/division [get]
func (h *Handler) CommerceDivision(w http.ResponseWriter, r *http.Request) {
	h.collection(w, r, "commerce_division")
}

// CommerceRanking serves the per-month commerce activity ranking
// @Summary Commerce activity ranking
// @Description Commerce activities ranked by sales volume inside each month
// @Tags commerce
// @Produce json
// @Success 200 {array} model.Document "Ranking documents"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /commerce/ranking [get]
func (h *Handler) CommerceRanking(w http.ResponseWriter, r *http.Request) {
	h.collection(w, r, "commerce_ranking")
}

// CommerceRevenueExpense serves yearly revenue and expense totals
// @Summary Commerce revenue and expense per year
// @Description Yearly commerce revenue and expense totals in millions
// @Tags commerce
// @Produce json
// @Success 200 {array} model.Document "Revenue and expense documents"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /commerce/revenue-expense/series [get]
func (h *Handler) CommerceRevenueExpense(w http.ResponseWriter, r *http.Request) {
	h.collection(w, r, "commerce_revenue_expense_year")
}

// CommerceRevenueExpenseGrouped serves revenue and expense per division
// @Summary Commerce revenue and expense by division
// @Description Yearly commerce revenue and expense totals split by division, in millions
// @Tags commerce
// @Produce json
// @Success 200 {array} model.Document "Grouped revenue and expense documents"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /commerce/revenue-expense/grouped [get]
func (h *Handler) CommerceRevenueExpenseGrouped(w http.ResponseWriter, r *http.Request) {
	h.collection(w, r, "commerce_revenue_expense_grouped")
}

// IndustryProduction serves per-activity industrial production series
// @Summary Industrial production series
// @Description Monthly physical production index, one document per industrial activity
// @Tags industry
// @Produce json
// @Success 200 {array} model.Document "Production documents"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /industry/production/series [get]
func (h *Handler) IndustryProduction(w http.ResponseWriter, r *http.Request) {
	h.collection(w, r, "industry_production_series")
}

// IndustryRevenue serves yearly industrial revenue per activity
// @Summary Industrial revenue per year
// @Description Yearly net revenue totals, one document per industrial activity
// @Tags industry
// @Produce json
// @Success 200 {array} model.Document "Revenue documents"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /industry/revenue/yearly [get]
func (h *Handler) IndustryRevenue(w http.ResponseWriter, r *http.Request) {
	h.collection(w, r, "industry_revenue_yearly")
}

// ServiceVolume serves per-segment service volume series
// @Summary Service volume series
// @Description Monthly service volume index, one document per service segment
// @Tags service
// @Produce json
// @Success 200 {array} model.Document "Volume documents"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /service/volume/series [get]
func (h *Handler) ServiceVolume(w http.ResponseWriter, r *http.Request) {
	h.collection(w, r, "service_volume_monthly")
}

// ServiceVolumeRanking serves the yearly service volume ranking
// @Summary Service volume ranking
// @Description Service segments ranked by yearly volume, top 10 per year
// @Tags service
// @Produce json
// @Success 200 {array} model.Document "Ranking documents"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /service/volume/ranking [get]
func (h *Handler) ServiceVolumeRanking(w http.ResponseWriter, r *http.Request) {
	h.collection(w, r, "service_volume_ranking")
}

// ServiceRevenue serves per-segment service revenue series
// @Summary Service revenue series
// @Description Monthly service revenue index, one document per service segment
// @Tags service
// @Produce json
// @Success 200 {array} model.Document "Revenue documents"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /service/revenue/series [get]
func (h *Handler) ServiceRevenue(w http.ResponseWriter, r *http.Request) {
	h.collection(w, r, "service_revenue_monthly")
}

// ServiceRevenueRanking serves the yearly service revenue ranking
// @Summary Service revenue ranking
// @Description Service segments ranked by yearly revenue, top 10 per year
// @Tags service
// @Produce json
// @Success 200 {array} model.Document "Ranking documents"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /service/revenue/ranking [get]
func (h *Handler) ServiceRevenueRanking(w http.ResponseWriter, r *http.Request) {
	h.collection(w, r, "service_revenue_ranking")
}
