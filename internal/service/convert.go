package service

import (
	"github.com/ArdhikaRizki/debTBE/internal/activity"
	"github.com/ArdhikaRizki/debTBE/internal/calculator"
	"github.com/ArdhikaRizki/debTBE/internal/models"
	"github.com/ArdhikaRizki/debTBE/pkg/api"
)

func debtRecordsFromAPI(in []api.DebtRecord) []calculator.DebtRecord {
	out := make([]calculator.DebtRecord, len(in))
	for i, d := range in {
		out[i] = calculator.DebtRecord{
			UserID: d.UserID,
			Type:   calculator.DebtType(d.Type),
			Amount: d.Amount,
			IsPaid: d.IsPaid,
		}
	}
	return out
}

func usersFromAPI(in []api.UserRef) []calculator.UserRecord {
	out := make([]calculator.UserRecord, len(in))
	for i, u := range in {
		out[i] = calculator.UserRecord{ID: u.ID, Name: u.Name}
	}
	return out
}

func balancesToAPI(in []calculator.UserBalance) []api.UserBalance {
	out := make([]api.UserBalance, len(in))
	for i, b := range in {
		out[i] = api.UserBalance{UserID: b.UserID, UserName: b.UserName, Balance: b.Balance}
	}
	return out
}

func optimizedToAPI(in []calculator.OptimizedDebt) []api.OptimizedDebt {
	out := make([]api.OptimizedDebt, len(in))
	for i, d := range in {
		out[i] = api.OptimizedDebt(d)
	}
	return out
}

func optimizedFromAPI(in []api.OptimizedDebt) []calculator.OptimizedDebt {
	out := make([]calculator.OptimizedDebt, len(in))
	for i, d := range in {
		out[i] = calculator.OptimizedDebt(d)
	}
	return out
}

func graphToAPI(g calculator.DebtGraph) *api.OptimizeResponse {
	return &api.OptimizeResponse{
		Balances:          balancesToAPI(g.Balances),
		OptimizedDebts:    optimizedToAPI(g.OptimizedDebts),
		TotalTransactions: g.TotalTransactions,
		TotalAmount:       g.TotalAmount,
	}
}

func activityToAPI(a activity.DebtActivity) api.Activity {
	return api.Activity{
		ID:          a.ID,
		Timestamp:   a.Timestamp,
		Type:        string(a.Type),
		From:        a.From,
		FromName:    a.FromName,
		To:          a.To,
		ToName:      a.ToName,
		Amount:      a.Amount,
		Description: a.Description,
	}
}

func activitiesToAPI(in []activity.DebtActivity) []api.Activity {
	out := make([]api.Activity, len(in))
	for i, a := range in {
		out[i] = activityToAPI(a)
	}
	return out
}

func debtToAPI(d *models.Debt) api.Debt {
	return api.Debt{
		ID:              d.ID,
		UserID:          d.UserID,
		Type:            string(d.Type),
		Name:            d.Name,
		OtherUserID:     d.OtherUserID,
		Amount:          d.Amount,
		Description:     d.Description,
		Date:            d.Date,
		IsPaid:          d.IsPaid,
		GroupID:         d.GroupID,
		Status:          string(d.Status),
		InitiatedBy:     d.InitiatedBy,
		RejectionReason: d.RejectionReason,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func userToAPI(u *models.User) api.User {
	return api.User{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
