// Package httpinterface exposes the swap market message surface over a
// minimal HTTP JSON API.
package httpinterface

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/atomicswap-network/swapd/internal/core/application"
	"github.com/atomicswap-network/swapd/internal/core/domain"
	"github.com/atomicswap-network/swapd/internal/infrastructure/ledger"
)

type coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

type orderInfo struct {
	OrderId uint64 `json:"order_id"`
	Maker   string `json:"maker"`
	CoinIn  coin   `json:"coin_in"`
	CoinOut coin   `json:"coin_out"`
	Taker   string `json:"taker,omitempty"`
	Timeout uint64 `json:"timeout"`
	Status  string `json:"status"`
}

// Handler routes the HTTP message surface to the application service. The
// optional bank and authz simulators, when set, additionally expose faucet
// and grant management endpoints.
type Handler struct {
	svc   *application.Service
	bank  *ledger.Bank
	authz *ledger.Authz
}

func NewHandler(
	svc *application.Service, bank *ledger.Bank, authz *ledger.Authz,
) *Handler {
	return &Handler{svc: svc, bank: bank, authz: authz}
}

// Router returns the mux serving the whole message surface.
func (h *Handler) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/config", h.handleConfig)
	mux.HandleFunc("/v1/orders", h.handleOrders)
	mux.HandleFunc("/v1/orders/accept", h.handleAcceptOrder)
	mux.HandleFunc("/v1/orders/confirm", h.handleConfirmOrder)
	mux.HandleFunc("/v1/webhooks", h.handleWebhooks)
	if h.bank != nil {
		mux.HandleFunc("/v1/faucet", h.handleFaucet)
	}
	if h.authz != nil {
		mux.HandleFunc("/v1/grants", h.handleGrants)
	}
	return mux
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		config, err := h.svc.GetConfig(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]string{"owner": config.Owner})
	case http.MethodPost:
		req := struct {
			Sender   string `json:"sender"`
			NewOwner string `json:"new_owner"`
		}{}
		if !readJSON(w, r, &req) {
			return
		}
		if err := h.svc.UpdateConfig(r.Context(), req.Sender, req.NewOwner); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]bool{"success": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listOrders(w, r)
	case http.MethodPost:
		h.createOrder(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Maker   string `json:"maker"`
		CoinIn  coin   `json:"coin_in"`
		CoinOut coin   `json:"coin_out"`
		Taker   string `json:"taker"`
		Timeout uint64 `json:"timeout"`
	}{}
	if !readJSON(w, r, &req) {
		return
	}

	coinIn, err := parseCoin(req.CoinIn)
	if err != nil {
		writeError(w, err)
		return
	}
	coinOut, err := parseCoin(req.CoinOut)
	if err != nil {
		writeError(w, err)
		return
	}

	orderId, err := h.svc.CreateSwapOrder(
		r.Context(), req.Maker, coinIn, coinOut, req.Taker, req.Timeout, nil,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]uint64{"order_id": orderId})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	var orders []domain.SwapOrder
	var err error
	if maker := r.URL.Query().Get("maker"); len(maker) > 0 {
		orders, err = h.svc.ListSwapOrdersForMaker(r.Context(), maker)
	} else {
		orders, err = h.svc.ListSwapOrders(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}

	infos := make([]orderInfo, 0, len(orders))
	for _, o := range orders {
		infos = append(infos, orderInfo{
			OrderId: o.Id,
			Maker:   o.Maker,
			CoinIn:  coin{o.CoinIn.Denom, o.CoinIn.Amount.String()},
			CoinOut: coin{o.CoinOut.Denom, o.CoinOut.Amount.String()},
			Taker:   o.Taker,
			Timeout: o.Timeout,
			Status:  o.Status.String(),
		})
	}
	writeJSON(w, map[string]interface{}{"orders": infos})
}

func (h *Handler) handleAcceptOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req := struct {
		Taker   string `json:"taker"`
		Maker   string `json:"maker"`
		OrderId uint64 `json:"order_id"`
		Funds   []coin `json:"funds"`
	}{}
	if !readJSON(w, r, &req) {
		return
	}

	funds, err := parseCoins(req.Funds)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.AcceptSwapOrder(
		r.Context(), req.Taker, req.Maker, req.OrderId, funds,
	); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

func (h *Handler) handleConfirmOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req := struct {
		Caller  string `json:"caller"`
		Maker   string `json:"maker"`
		OrderId uint64 `json:"order_id"`
		Funds   []coin `json:"funds"`
	}{}
	if !readJSON(w, r, &req) {
		return
	}

	funds, err := parseCoins(req.Funds)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.ConfirmSwapOrder(
		r.Context(), req.Caller, req.Maker, req.OrderId, funds,
	); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

func (h *Handler) handleWebhooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		req := struct {
			Topic    string `json:"topic"`
			Endpoint string `json:"endpoint"`
			Secret   string `json:"secret"`
		}{}
		if !readJSON(w, r, &req) {
			return
		}
		id, err := h.svc.AddWebhook(req.Topic, req.Endpoint, req.Secret)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]string{"id": id})
	case http.MethodDelete:
		req := struct {
			Topic string `json:"topic"`
			Id    string `json:"id"`
		}{}
		if !readJSON(w, r, &req) {
			return
		}
		if err := h.svc.RemoveWebhook(req.Topic, req.Id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]bool{"success": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleFaucet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req := struct {
		Account string `json:"account"`
		Coins   []coin `json:"coins"`
	}{}
	if !readJSON(w, r, &req) {
		return
	}

	coins, err := parseCoins(req.Coins)
	if err != nil {
		writeError(w, err)
		return
	}
	h.bank.Mint(req.Account, coins)
	writeJSON(w, map[string]bool{"success": true})
}

func (h *Handler) handleGrants(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Grantor    string `json:"grantor"`
		Expiration uint64 `json:"expiration"`
	}{}

	switch r.Method {
	case http.MethodPost:
		if !readJSON(w, r, &req) {
			return
		}
		h.authz.Grant(req.Grantor, req.Expiration)
		writeJSON(w, map[string]bool{"success": true})
	case http.MethodDelete:
		if !readJSON(w, r, &req) {
			return
		}
		h.authz.Revoke(req.Grantor)
		writeJSON(w, map[string]bool{"success": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func parseCoin(c coin) (domain.Coin, error) {
	amount, err := decimal.NewFromString(c.Amount)
	if err != nil {
		return domain.Coin{}, err
	}
	return domain.Coin{Denom: c.Denom, Amount: amount}, nil
}

func parseCoins(cc []coin) ([]domain.Coin, error) {
	coins := make([]domain.Coin, 0, len(cc))
	for _, c := range cc {
		parsed, err := parseCoin(c)
		if err != nil {
			return nil, err
		}
		coins = append(coins, parsed)
	}
	return coins, nil
}

func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch err {
	case domain.ErrOrderNotFound, domain.ErrPointerNotFound:
		status = http.StatusNotFound
	case domain.ErrUnauthorized, domain.ErrSenderIsMaker:
		status = http.StatusForbidden
	}
	http.Error(w, err.Error(), status)
}
