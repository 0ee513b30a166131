// Package server is the HTTP boundary: handlers decode JSON, call into the
// directory, ledger and batch processor, and encode results. No business
// logic lives here.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/afrifa-micro/banking-core/internal/batch"
	"github.com/afrifa-micro/banking-core/internal/directory"
	"github.com/afrifa-micro/banking-core/internal/interfaces"
	"github.com/afrifa-micro/banking-core/internal/ledger"
	"github.com/afrifa-micro/banking-core/internal/models"
)

const defaultHistoryLimit = 50

type Server struct {
	directory *directory.Directory
	ledger    *ledger.Ledger
	processor *batch.Processor
	history   interfaces.HistoryStore
	log       zerolog.Logger
}

func NewServer(dir *directory.Directory, led *ledger.Ledger, proc *batch.Processor, history interfaces.HistoryStore, log zerolog.Logger) *Server {
	return &Server{
		directory: dir,
		ledger:    led,
		processor: proc,
		history:   history,
		log:       log,
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// customers handles:
//   - POST /customers       register a customer
//   - GET  /customers?q=    search customers (empty q lists all)
func (s *Server) customers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var customer models.Customer
		if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		registered, err := s.directory.RegisterCustomer(r.Context(), customer)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, registered)

	case http.MethodGet:
		results, err := s.directory.SearchCustomers(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, results)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// customerSubroutes handles:
//   - GET  /customers/{id}
//   - POST /customers/{id}/accounts      open an account
//   - GET  /customers/{id}/transactions  deposit history, newest first
func (s *Server) customerSubroutes(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/customers/"), "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	id := parts[0]

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		customer, err := s.directory.GetCustomer(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, customer)
		return
	}

	switch parts[1] {
	case "accounts":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			AccountType    string          `json:"account_type"`
			InitialDeposit decimal.Decimal `json:"initial_deposit"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		account, err := s.directory.OpenAccount(r.Context(), id, req.AccountType, req.InitialDeposit)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, account)

	case "transactions":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		records, err := s.history.ListByCustomer(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		if records == nil {
			records = []models.TransactionRecord{}
		}
		writeJSON(w, http.StatusOK, records)

	default:
		http.NotFound(w, r)
	}
}

// balance handles GET /accounts/balance?account_number=.
func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	accountNumber := r.URL.Query().Get("account_number")
	if accountNumber == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "account_number is a mandatory field"})
		return
	}

	balance, err := s.ledger.GetBalance(r.Context(), accountNumber)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		AccountNumber string          `json:"account_number"`
		Balance       decimal.Decimal `json:"balance"`
	}{
		AccountNumber: accountNumber,
		Balance:       balance,
	})
}

// batches handles POST /batches: commit a deposit batch. A batch where every
// entry was skipped returns 400 with the counts; a storage failure mid-batch
// returns 500 with however much was committed before the stop.
func (s *Server) batches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Entries []models.DepositEntry `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := s.processor.CommitBatch(r.Context(), req.Entries)
	if err != nil {
		s.log.Error().Err(err).Str("batch_id", result.BatchID).Msg("batch commit failed")
		writeJSON(w, statusFor(err), struct {
			Error string `json:"error"`
			models.BatchResult
		}{
			Error:       err.Error(),
			BatchResult: result,
		})
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// transactions handles GET /transactions, newest first:
//   - ?limit=N  at most N records (default 50)
//   - ?days=N   records from the trailing N days instead
func (s *Server) transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var (
		records []models.TransactionRecord
		err     error
	)
	if days, convErr := strconv.Atoi(r.URL.Query().Get("days")); convErr == nil && days > 0 {
		since := time.Now().UTC().AddDate(0, 0, -days)
		records, err = s.history.ListSince(r.Context(), since)
	} else {
		limit := defaultHistoryLimit
		if n, convErr := strconv.Atoi(r.URL.Query().Get("limit")); convErr == nil && n > 0 {
			limit = n
		}
		records, err = s.history.ListRecent(r.Context(), limit)
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	if records == nil {
		records = []models.TransactionRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}
