package dto

import (
	"nightlife/internal/domains/ledger/model"
	"nightlife/shared"
	gDto "nightlife/shared/dto"
	gModel "nightlife/shared/model"
	"nightlife/shared/timezone"

	"github.com/google/uuid"
)

type BalanceResponse struct {
	UserID string `json:"user_id"`
	Coins  int64  `json:"coins"`
}

// DebitRequest removes Amount from a balance and records it against a booking.
type DebitRequest struct {
	UserID      string
	Amount      int64
	Description string
	BookingID   string
}

func (d DebitRequest) ToTransactionModel(actor string) model.Transaction {
	var bookingID *string
	if d.BookingID != "" {
		bookingID = &d.BookingID
	}

	return model.Transaction{
		ID:          uuid.NewString(),
		UserID:      d.UserID,
		Title:       model.TitleRedeem,
		Description: d.Description,
		Coins:       -d.Amount,
		BookingID:   bookingID,
		Metadata:    gModel.NewMetadata(timezone.Now(), actor),
	}
}

type TransactionResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Coins       int64   `json:"coins"`
	BookingID   *string `json:"booking_id,omitempty"`
	gDto.Metadata
}

func (r *TransactionResponse) FromModel(model model.Transaction) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Coins = model.Coins
	r.BookingID = model.BookingID
	r.Metadata.FromModel(model.Metadata)
}

type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []model.Transaction, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromModel(mod)
	}
}
