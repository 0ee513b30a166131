package server

import "net/http"

// Router registers all endpoints on a fresh mux.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.health)
	mux.HandleFunc("/customers", s.customers)
	mux.HandleFunc("/customers/", s.customerSubroutes)
	mux.HandleFunc("/accounts/balance", s.balance)
	mux.HandleFunc("/batches", s.batches)
	mux.HandleFunc("/transactions", s.transactions)

	return mux
}
