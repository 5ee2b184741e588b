package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
)

const transactionsResource = "transactions"

// TransactionService reads and mutates transactions through the transaction service.
type TransactionService struct {
	backend Requester
	logger  *logrus.Logger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(backend Requester, logger *logrus.Logger) *TransactionService {
	return &TransactionService{backend: backend, logger: logger}
}

// ListTransactions returns every transaction of the signed in user.
// Records with an unknown type or a negative amount are dropped.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var list transactionList
	if err := s.backend.Get(ctx, transactionsResource, nil, &list); err != nil {
		return nil, err
	}
	return s.convert(list), nil
}

// SearchByCategory returns the transactions filed under category.
func (s *TransactionService) SearchByCategory(ctx context.Context, category string) ([]Transaction, error) {
	if category == "" {
		return nil, NewValidationError(MessageRequiredFields, "category")
	}

	var list transactionList
	query := url.Values{"category": {category}}
	if err := s.backend.Get(ctx, transactionsResource+"/search", query, &list); err != nil {
		return nil, err
	}
	return s.convert(list), nil
}

// AddTransaction creates a transaction and returns it as stored.
func (s *TransactionService) AddTransaction(ctx context.Context, t Transaction) (Transaction, error) {
	if err := validateTransaction(t); err != nil {
		return Transaction{}, err
	}

	var created transactionWire
	if err := s.backend.Post(ctx, transactionsResource, newTransactionPayload(t), &created); err != nil {
		return Transaction{}, err
	}
	return mergeCreated(t, created), nil
}

// UpdateTransaction replaces the transaction identified by t.ID.
func (s *TransactionService) UpdateTransaction(ctx context.Context, t Transaction) (Transaction, error) {
	if t.ID == "" {
		return Transaction{}, NewValidationError(MessageRequiredFields, "id")
	}
	if err := validateTransaction(t); err != nil {
		return Transaction{}, err
	}

	var updated transactionWire
	if err := s.backend.Put(ctx, resourcePath(transactionsResource, t.ID), newTransactionPayload(t), &updated); err != nil {
		return Transaction{}, err
	}
	return mergeCreated(t, updated), nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	if id == "" {
		return NewValidationError(MessageRequiredFields, "id")
	}
	return s.backend.Delete(ctx, resourcePath(transactionsResource, id))
}

func validateTransaction(t Transaction) error {
	check := fieldCheck{}
	check.require("type", t.Type.Valid())
	check.require("amount", t.Amount.IsPositive())
	check.require("category", t.Category != "")
	check.require("date", t.HasValidDate())
	return check.err()
}

// mergeCreated prefers what the backend echoed back and falls back to what was sent.
func mergeCreated(sent Transaction, echoed transactionWire) Transaction {
	if echoed.value() == "" {
		return sent
	}
	out := echoed.toTransaction()
	if !out.HasValidDate() {
		out.Date = sent.Date
	}
	return out
}

func (s *TransactionService) convert(list transactionList) []Transaction {
	out := make([]Transaction, 0, len(list))
	for _, w := range list {
		t := w.toTransaction()
		if reason := rejectReason(t); reason != "" {
			s.logger.WithFields(logrus.Fields{
				"transactionID": t.ID,
				"reason":        reason,
			}).Warn("TransactionService.droppedRecord")
			continue
		}
		if !t.HasValidDate() {
			s.logger.WithFields(logrus.Fields{
				"transactionID": t.ID,
				"date":          t.RawDate,
			}).Debug("TransactionService.unparsableDate")
		}
		out = append(out, t)
	}
	return out
}

func rejectReason(t Transaction) string {
	switch {
	case !t.Type.Valid():
		return fmt.Sprintf("unknown type %q", t.Type)
	case t.Amount.IsNegative():
		return "negative amount"
	}
	return ""
}
