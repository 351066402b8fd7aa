package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

const (
	payerAddress = "0xpayer00000000000000000000000000000000001"
	payerKey     = "0xkey-of-the-test-payer"
	gatewayToken = "gw-session-1"
)

// fakeGateway is an in-process wallet gateway speaking the {success, data,
// error} envelope. It holds one wallet with ETH and USDC.
type fakeGateway struct {
	server *httptest.Server

	mu            sync.Mutex
	broadcasts    int
	broadcastErr  string
	nextTreeRoot  string
	lastTransfers []map[string]any
}

func newFakeGateway() *fakeGateway {
	g := &fakeGateway{nextTreeRoot: "0xtreeroot"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/sessions", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]string{"sessionToken": gatewayToken, "address": payerAddress})
	})
	mux.HandleFunc("DELETE /v1/sessions", g.authed(func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, nil)
	}))
	mux.HandleFunc("GET /v1/tokens", g.authed(func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, []map[string]any{
			{"tokenIndex": 0, "symbol": "ETH", "address": "0x0", "decimals": 18},
			{"tokenIndex": 1, "symbol": "USDC", "address": "0xusdc", "decimals": 6},
		})
	}))
	mux.HandleFunc("GET /v1/balances", g.authed(func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, []map[string]any{
			{"token": map[string]any{"tokenIndex": 0, "symbol": "ETH", "decimals": 18}, "amount": "2000000000000000000"},
			{"token": map[string]any{"tokenIndex": 1, "symbol": "USDC", "decimals": 6}, "amount": "250000000"},
		})
	}))
	mux.HandleFunc("GET /v1/transfer-fee", g.authed(func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]any{"fee": map[string]any{"amount": "1000000000000", "tokenIndex": 0}})
	}))
	mux.HandleFunc("GET /v1/private-key", g.authed(func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]string{"privateKey": payerKey})
	}))
	mux.HandleFunc("POST /v1/sign", g.authed(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		writeOK(w, map[string]string{"message": in.Message, "signature": "sig:" + in.Message})
	}))
	mux.HandleFunc("POST /v1/verify", g.authed(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Message   string `json:"message"`
			Signature string `json:"signature"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		writeOK(w, map[string]bool{"valid": in.Signature == "sig:"+in.Message})
	}))
	mux.HandleFunc("POST /v1/broadcast", g.authed(g.broadcast))

	g.server = httptest.NewServer(mux)
	return g
}

func (g *fakeGateway) broadcast(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TransferRequests []map[string]any `json:"transferRequests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.broadcasts++
	g.lastTransfers = in.TransferRequests
	if g.broadcastErr != "" {
		msg := g.broadcastErr
		g.broadcastErr = ""
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	writeOK(w, map[string]string{"txTreeRoot": g.nextTreeRoot})
}

// failNextBroadcast makes the next broadcast answer with msg.
func (g *fakeGateway) failNextBroadcast(msg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.broadcastErr = msg
}

func (g *fakeGateway) broadcastCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.broadcasts
}

func (g *fakeGateway) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+gatewayToken {
			writeErr(w, http.StatusUnauthorized, "unknown session")
			return
		}
		next(w, r)
	}
}

func (g *fakeGateway) close() { g.server.Close() }

func writeOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
