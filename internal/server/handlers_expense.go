package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/service"
)

type createExpenseRequest struct {
	Description  string             `json:"description" validate:"required"`
	Amount       float64            `json:"amount" validate:"required,gt=0"`
	PaidBy       string             `json:"paid_by" validate:"required"`
	Participants []string           `json:"participants" validate:"required,min=2,dive,required"`
	SplitType    string             `json:"split_type" validate:"omitempty,oneof=equal exact percentage"`
	SplitInput   map[string]float64 `json:"split_details"`
	Category     string             `json:"category"`
}

// updateExpenseRequest is a partial document: nil fields keep their stored
// values. Only the allow-listed fields below can change via update.
type updateExpenseRequest struct {
	Description  *string            `json:"description" validate:"omitempty,min=1"`
	Amount       *float64           `json:"amount" validate:"omitempty,gt=0"`
	PaidBy       *string            `json:"paid_by" validate:"omitempty,min=1"`
	Participants []string           `json:"participants" validate:"omitempty,min=2,dive,required"`
	SplitType    *string            `json:"split_type" validate:"omitempty,oneof=equal exact percentage"`
	SplitInput   map[string]float64 `json:"split_details"`
	Category     *string            `json:"category"`
}

// expenseResponse mirrors the stored expense, derived fields included.
type expenseResponse struct {
	ID           string             `json:"id"`
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	PaidBy       string             `json:"paid_by"`
	Participants []string           `json:"participants"`
	SplitType    string             `json:"split_type"`
	SplitDetails map[string]float64 `json:"split_details"`
	PaidFlags    map[string]bool    `json:"participants_paid"`
	EveryonePaid bool               `json:"everyone_paid"`
	Category     string             `json:"category"`
	CreatedAt    int64              `json:"created_at"`
	UpdatedAt    int64              `json:"updated_at"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       e.Amount,
		PaidBy:       e.PaidBy,
		Participants: e.Participants,
		SplitType:    string(e.SplitType),
		SplitDetails: e.Allocation,
		PaidFlags:    e.PaidFlags,
		EveryonePaid: e.EveryonePaid,
		Category:     string(e.Category),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toExpenseResponses(expenses []*models.Expense) []expenseResponse {
	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseResponse(e)
	}
	return out
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := s.decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	expense, err := s.expenses.CreateExpense(r.Context(), service.CreateExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		Participants: req.Participants,
		SplitType:    models.SplitType(req.SplitType),
		SplitInput:   req.SplitInput,
		Category:     req.Category,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toExpenseResponse(expense), "Expense added successfully")
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.GetExpense(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponse(expense), "Expense fetched successfully")
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := s.decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	var splitType *models.SplitType
	if req.SplitType != nil {
		t := models.SplitType(*req.SplitType)
		splitType = &t
	}

	expense, err := s.expenses.UpdateExpense(r.Context(), mux.Vars(r)["id"], service.UpdateExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		Participants: req.Participants,
		SplitType:    splitType,
		SplitInput:   req.SplitInput,
		Category:     req.Category,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponse(expense), "Expense updated successfully")
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.DeleteExpense(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil, "Expense deleted successfully")
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListExpenses(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponses(expenses), "All expenses fetched successfully")
}
