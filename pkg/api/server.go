package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/bank"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/dao"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/multisig"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/staking"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/token"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/wallet"
)

// Server exposes the governance engine's read and mutation surface over HTTP
// for external dashboards.
type Server struct {
	service      *dao.Service
	bank         *bank.Ledger
	tokens       *token.Ledger
	adminGateway *multisig.Gateway
	panicGateway *multisig.Gateway
	port         int
	router       *mux.Router
	server       *http.Server
}

// NewServer creates the HTTP server for the given engine and gateways.
func NewServer(service *dao.Service, nativeBank *bank.Ledger, tokens *token.Ledger, adminGateway, panicGateway *multisig.Gateway, port int) *Server {
	s := &Server{
		service:      service,
		bank:         nativeBank,
		tokens:       tokens,
		adminGateway: adminGateway,
		panicGateway: panicGateway,
		port:         port,
	}
	s.setupRoutes()
	return s
}

// enableCORS enables CORS for all routes
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestLogger tags every request with an id and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	})
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()
	s.router.Use(enableCORS)
	s.router.Use(requestLogger)

	// Status and parameters
	s.router.HandleFunc("/api/status", s.getStatus).Methods("GET")
	s.router.HandleFunc("/api/params", s.getParams).Methods("GET")
	s.router.HandleFunc("/api/health", s.getHealth).Methods("GET")

	// Token routes
	s.router.HandleFunc("/api/tokens/buy", s.buyTokens).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/tokens/approve", s.approveTokens).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/tokens/balance/{address}", s.getTokenBalance).Methods("GET")

	// Wallet routes
	s.router.HandleFunc("/api/wallet/create", s.createWallet).Methods("POST", "OPTIONS")

	// Native-currency routes. Deposit is the faucet every other flow draws
	// on: purchases, stake-backed proposals and treasury donations all start
	// from a funded native balance.
	s.router.HandleFunc("/api/bank/deposit", s.depositFunds).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/bank/balance/{address}", s.getBankBalance).Methods("GET")

	// Staking routes
	s.router.HandleFunc("/api/stakes/{address}", s.getStakeInfo).Methods("GET")
	s.router.HandleFunc("/api/stakes/{address}/power", s.getVotingPower).Methods("GET")
	s.router.HandleFunc("/api/stake/voting", s.stakeForVoting).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/stake/proposing", s.stakeForProposing).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/unstake/voting", s.unstakeFromVoting).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/unstake/proposing", s.unstakeFromProposing).Methods("POST", "OPTIONS")

	// Proposal routes
	s.router.HandleFunc("/api/proposals", s.listProposals).Methods("GET")
	s.router.HandleFunc("/api/proposals", s.createProposal).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/proposals/treasury", s.createTreasuryProposal).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/proposals/{id}", s.getProposal).Methods("GET")
	s.router.HandleFunc("/api/proposals/{id}/voters", s.getProposalVoters).Methods("GET")
	s.router.HandleFunc("/api/proposals/{id}/votes/{address}", s.getVoterChoice).Methods("GET")
	s.router.HandleFunc("/api/proposals/{id}/vote", s.castVote).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/proposals/{id}/finalize", s.finalizeProposal).Methods("POST", "OPTIONS")

	// Treasury routes
	s.router.HandleFunc("/api/treasury", s.getTreasury).Methods("GET")
	s.router.HandleFunc("/api/treasury/fund", s.fundTreasury).Methods("POST", "OPTIONS")

	// Multisig routes, one tree per role
	s.router.HandleFunc("/api/multisig/{role}", s.getGateway).Methods("GET")
	s.router.HandleFunc("/api/multisig/{role}/transactions", s.submitTransaction).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/multisig/{role}/transactions/{id}", s.getTransaction).Methods("GET")
	s.router.HandleFunc("/api/multisig/{role}/transactions/{id}/confirm", s.confirmTransaction).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/multisig/{role}/transactions/{id}/execute", s.executeTransaction).Methods("POST", "OPTIONS")

	// Prometheus metrics
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

// Start starts the web server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Info().Str("addr", addr).Msg("API server listening")

	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	return s.server.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps the engine's error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, dao.ErrInvalidProposal), errors.Is(err, multisig.ErrInvalidTransaction):
		status = http.StatusNotFound
	case errors.Is(err, dao.ErrNotOwner), errors.Is(err, dao.ErrNotPanicWallet), errors.Is(err, multisig.ErrNotAnOwner), errors.Is(err, token.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, dao.ErrAlreadyVoted), errors.Is(err, multisig.ErrAlreadyExecuted):
		status = http.StatusConflict
	case errors.Is(err, dao.ErrDAOPaused):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func parseAmount(value string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", value)
	}
	return amount, nil
}

func pathID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}

func (s *Server) gateway(r *http.Request) (*multisig.Gateway, error) {
	switch mux.Vars(r)["role"] {
	case "admin":
		return s.adminGateway, nil
	case "panic":
		return s.panicGateway, nil
	}
	return nil, fmt.Errorf("unknown multisig role %q", mux.Vars(r)["role"])
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"address":        s.service.Address(),
		"owner":          s.service.Owner(),
		"panic_wallet":   s.service.PanicWallet(),
		"paused":         s.service.IsPaused(),
		"proposal_count": s.service.ProposalCount(),
		"treasury":       s.service.TreasuryBalance().String(),
		"total_supply":   s.tokens.TotalSupply().String(),
	})
}

func (s *Server) getParams(w http.ResponseWriter, r *http.Request) {
	params := s.service.Params()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token_price":             params.TokenPrice.String(),
		"tokens_per_voting_power": params.TokensPerVotingPower.String(),
		"min_stake_to_vote":       params.MinStakeToVote.String(),
		"min_stake_to_propose":    params.MinStakeToPropose.String(),
		"staking_lock_time":       params.StakingLockTime.String(),
		"proposal_duration":       params.ProposalDuration.String(),
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) buyTokens(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Buyer string `json:"buyer"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err)
		return
	}
	value, err := parseAmount(req.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	tokensOut, err := s.service.BuyTokens(req.Buyer, value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"tokens": tokensOut.String()})
}

// approveTokens grants the engine (or any spender) an allowance, which the
// staking operations draw on.
func (s *Server) approveTokens(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Owner   string `json:"owner"`
		Spender string `json:"spender"`
		Amount  string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.tokens.Approve(req.Owner, req.Spender, amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"allowance": s.tokens.Allowance(req.Owner, req.Spender).String(),
	})
}

func (s *Server) getTokenBalance(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	writeJSON(w, http.StatusOK, map[string]string{
		"address": address,
		"balance": s.tokens.BalanceOf(address).String(),
	})
}

func (s *Server) createWallet(w http.ResponseWriter, r *http.Request) {
	newWallet, err := wallet.New()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"address": newWallet.Address})
}

func (s *Server) depositFunds(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
		Amount  string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.bank.Deposit(req.Address, amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"address": req.Address,
		"balance": s.bank.BalanceOf(req.Address).String(),
	})
}

func (s *Server) getBankBalance(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	writeJSON(w, http.StatusOK, map[string]string{
		"address": address,
		"balance": s.bank.BalanceOf(address).String(),
	})
}

func stakeInfoResponse(info staking.Record) map[string]interface{} {
	return map[string]interface{}{
		"amount_for_voting":      info.AmountForVoting.String(),
		"locked_until_voting":    info.LockedUntilVoting,
		"amount_for_proposing":   info.AmountForProposing.String(),
		"locked_until_proposing": info.LockedUntilProposing,
	}
}

func (s *Server) getStakeInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stakeInfoResponse(s.service.StakeInfo(mux.Vars(r)["address"])))
}

func (s *Server) getVotingPower(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"voting_power": s.service.VotingPower(mux.Vars(r)["address"]).String(),
	})
}

type stakeRequest struct {
	Staker string `json:"staker"`
	Amount string `json:"amount"`
}

func (s *Server) stakeOp(w http.ResponseWriter, r *http.Request, op func(string, *big.Int) error) {
	var req stakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := op(req.Staker, amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stakeInfoResponse(s.service.StakeInfo(req.Staker)))
}

func (s *Server) stakeForVoting(w http.ResponseWriter, r *http.Request) {
	s.stakeOp(w, r, s.service.StakeForVoting)
}

func (s *Server) stakeForProposing(w http.ResponseWriter, r *http.Request) {
	s.stakeOp(w, r, s.service.StakeForProposing)
}

func (s *Server) unstakeFromVoting(w http.ResponseWriter, r *http.Request) {
	s.stakeOp(w, r, s.service.UnstakeFromVoting)
}

func (s *Server) unstakeFromProposing(w http.ResponseWriter, r *http.Request) {
	s.stakeOp(w, r, s.service.UnstakeFromProposing)
}

func proposalResponse(p *dao.Proposal) map[string]interface{} {
	resp := map[string]interface{}{
		"id":            p.ID,
		"title":         p.Title,
		"description":   p.Description,
		"proposer":      p.Proposer,
		"created_at":    p.CreatedAt,
		"deadline":      p.Deadline,
		"votes_for":     p.VotesFor.String(),
		"votes_against": p.VotesAgainst.String(),
		"status":        p.Status.String(),
		"kind":          p.Kind.String(),
	}
	if p.Kind == dao.ProposalKindTreasury {
		resp["treasury_target"] = p.TreasuryTarget
		resp["treasury_amount"] = p.TreasuryAmount.String()
	}
	return resp
}

func (s *Server) listProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := s.service.ListProposals()
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]map[string]interface{}, 0, len(proposals))
	for _, p := range proposals {
		resp = append(resp, proposalResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getProposal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	proposal, err := s.service.GetProposal(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposalResponse(proposal))
}

func (s *Server) getProposalVoters(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	voters, err := s.service.ProposalVoters(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"voters": voters})
}

func (s *Server) getVoterChoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	voter := mux.Vars(r)["address"]
	voted, err := s.service.HasVoted(id, voter)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := map[string]interface{}{"voter": voter, "has_voted": voted}
	if voted {
		choice, err := s.service.VoterChoice(id, voter)
		if err != nil {
			writeError(w, err)
			return
		}
		resp["in_favor"] = choice
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) createProposal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Proposer    string `json:"proposer"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err)
		return
	}
	id, err := s.service.CreateProposal(req.Proposer, req.Title, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uint64{"id": id})
}

func (s *Server) createTreasuryProposal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Proposer    string `json:"proposer"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Target      string `json:"target"`
		Amount      string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := s.service.CreateTreasuryProposal(req.Proposer, req.Title, req.Description, req.Target, amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uint64{"id": id})
}

func (s *Server) castVote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Voter   string `json:"voter"`
		InFavor bool   `json:"in_favor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.service.Vote(req.Voter, id, req.InFavor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "voted"})
}

func (s *Server) finalizeProposal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	status, err := s.service.FinalizeProposal(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status.String()})
}

func (s *Server) getTreasury(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"balance": s.service.TreasuryBalance().String(),
	})
}

func (s *Server) fundTreasury(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From   string `json:"from"`
		Amount string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.service.ReceiveFunds(req.From, amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"balance": s.service.TreasuryBalance().String(),
	})
}

func (s *Server) getGateway(w http.ResponseWriter, r *http.Request) {
	gateway, err := s.gateway(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"address":                gateway.Address(),
		"owners":                 gateway.Owners(),
		"required_confirmations": gateway.Required(),
		"transaction_count":      gateway.TransactionCount(),
	})
}

func (s *Server) submitTransaction(w http.ResponseWriter, r *http.Request) {
	gateway, err := s.gateway(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Submitter string            `json:"submitter"`
		Target    string            `json:"target"`
		Value     string            `json:"value"`
		Call      string            `json:"call"`
		Args      map[string]string `json:"args"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err)
		return
	}

	value := big.NewInt(0)
	if req.Value != "" {
		if value, err = parseAmount(req.Value); err != nil {
			writeError(w, err)
			return
		}
	}
	call, err := buildCall(req.Call, req.Args)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := gateway.SubmitTransaction(req.Submitter, req.Target, value, call)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uint64{"id": id})
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	gateway, err := s.gateway(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	tx, err := gateway.GetTransaction(id)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]interface{}{
		"id":            tx.ID,
		"target":        tx.Target,
		"value":         tx.Value.String(),
		"executed":      tx.Executed,
		"confirmations": tx.Confirmations,
	}
	if tx.Call != nil {
		resp["call"] = tx.Call.Name()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) confirmTransaction(w http.ResponseWriter, r *http.Request) {
	s.gatewayOp(w, r, func(gateway *multisig.Gateway, owner string, id uint64) error {
		return gateway.ConfirmTransaction(owner, id)
	})
}

func (s *Server) executeTransaction(w http.ResponseWriter, r *http.Request) {
	s.gatewayOp(w, r, func(gateway *multisig.Gateway, owner string, id uint64) error {
		return gateway.ExecuteTransaction(owner, id)
	})
}

func (s *Server) gatewayOp(w http.ResponseWriter, r *http.Request, op func(*multisig.Gateway, string, uint64) error) {
	gateway, err := s.gateway(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Owner string `json:"owner"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err)
		return
	}
	if err := op(gateway, req.Owner, id); err != nil {
		writeError(w, err)
		return
	}

	tx, err := gateway.GetTransaction(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"confirmations": tx.Confirmations,
		"executed":      tx.Executed,
	})
}

// buildCall decodes a named privileged call and its arguments into the typed
// call the router dispatches on.
func buildCall(name string, args map[string]string) (multisig.Call, error) {
	amount := func(key string) (*big.Int, error) {
		return parseAmount(args[key])
	}
	duration := func(key string) (time.Duration, error) {
		return time.ParseDuration(args[key])
	}

	switch name {
	case "":
		return nil, nil
	case "mint":
		value, err := amount("amount")
		if err != nil {
			return nil, err
		}
		return dao.MintCall{To: args["to"], Amount: value}, nil
	case "updateTokenPrice":
		value, err := amount("value")
		if err != nil {
			return nil, err
		}
		return dao.UpdateTokenPriceCall{Value: value}, nil
	case "updateTokensPerVotingPower":
		value, err := amount("value")
		if err != nil {
			return nil, err
		}
		return dao.UpdateTokensPerVotingPowerCall{Value: value}, nil
	case "updateMinStakeToVote":
		value, err := amount("value")
		if err != nil {
			return nil, err
		}
		return dao.UpdateMinStakeToVoteCall{Value: value}, nil
	case "updateMinStakeToPropose":
		value, err := amount("value")
		if err != nil {
			return nil, err
		}
		return dao.UpdateMinStakeToProposeCall{Value: value}, nil
	case "updateStakingLockTime":
		value, err := duration("value")
		if err != nil {
			return nil, err
		}
		return dao.UpdateStakingLockTimeCall{Value: value}, nil
	case "updateProposalDuration":
		value, err := duration("value")
		if err != nil {
			return nil, err
		}
		return dao.UpdateProposalDurationCall{Value: value}, nil
	case "transferOwnership":
		return dao.TransferOwnershipCall{NewOwner: args["new_owner"]}, nil
	case "setPanicWallet":
		return dao.SetPanicWalletCall{Wallet: args["wallet"]}, nil
	case "panic":
		return dao.PanicCall{}, nil
	case "tranquilidad":
		return dao.TranquilidadCall{}, nil
	}
	return nil, fmt.Errorf("unknown call %q", name)
}
