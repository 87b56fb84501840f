package server

import (
	"net/http"
	"strconv"

	"github.com/splittab/splittab/internal/models"
)

type settlementResponse struct {
	ID        string  `json:"id"`
	ExpenseID string  `json:"expense_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
	CreatedAt int64   `json:"created_at"`
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.expenses.ListSettlements(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]settlementResponse, len(settlements))
	for i, settlement := range settlements {
		out[i] = settlementResponse{
			ID:        settlement.ID,
			ExpenseID: settlement.ExpenseID,
			From:      settlement.From,
			To:        settlement.To,
			Amount:    settlement.Amount,
			Category:  string(settlement.Category),
			CreatedAt: settlement.CreatedAt,
		}
	}
	respondJSON(w, http.StatusOK, out, "Current settlement summary retrieved successfully")
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.reports.ComputeBalances(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, balances, "User balances calculated successfully")
}

func (s *Server) handlePeople(w http.ResponseWriter, r *http.Request) {
	people, err := s.reports.ListPeople(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, people, "List of all unique people retrieved successfully")
}

func (s *Server) handleCategorySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.CategorySummary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary, "Category-wise summary generated successfully")
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.MonthlySummary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary, "Monthly spending summary generated successfully")
}

func (s *Server) handleUserSpending(w http.ResponseWriter, r *http.Request) {
	totals, err := s.reports.UserSpendingTotals(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, totals, "User-wise total paid amounts")
}

func (s *Server) handleTopExpenses(w http.ResponseWriter, r *http.Request) {
	n := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, models.NewValidationError("limit must be a positive integer"))
			return
		}
		n = parsed
	}

	top, err := s.reports.TopExpenses(r.Context(), n)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponses(top), "Top expenses retrieved successfully")
}
