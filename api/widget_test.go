package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/offrampkit/offramp-widget-backend/providers"
	"github.com/offrampkit/offramp-widget-backend/providers/blindpay"
	"github.com/offrampkit/offramp-widget-backend/services/monitoring/logging"
	"github.com/offrampkit/offramp-widget-backend/services/session"
	"github.com/offrampkit/offramp-widget-backend/services/wallet"
	"github.com/offrampkit/offramp-widget-backend/services/withdraw"
	"github.com/offrampkit/offramp-widget-backend/utils"
)

// backendStub fakes the payments backend: one receiver for the known email
// and a mutable bank account list.
type backendStub struct {
	receiver    map[string]interface{}
	accounts    []map[string]interface{}
	quoteAmount float64
}

func (b *backendStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)

		switch r.URL.Path {
		case "/receiver/getByEmail":
			json.NewEncoder(w).Encode(map[string]interface{}{"data": b.receiver})
		case "/bank-accounts/get":
			json.NewEncoder(w).Encode(map[string]interface{}{"data": b.accounts})
		case "/bank-accounts/create":
			data, _ := body["bankAccountData"].(map[string]interface{})
			data["id"] = "ba_new"
			b.accounts = append(b.accounts, data)
			json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
		case "/bank-accounts/delete":
			kept := b.accounts[:0]
			for _, a := range b.accounts {
				if a["id"] != body["bankAccountId"] {
					kept = append(kept, a)
				}
			}
			b.accounts = kept
			json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{}})
		case "/quotes/create":
			quoteData, _ := body["quoteData"].(map[string]interface{})
			b.quoteAmount, _ = quoteData["request_amount"].(float64)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": map[string]interface{}{
					"id":              "qt_1",
					"expires_at":      time.Now().Add(time.Minute).UnixMilli(),
					"sender_amount":   b.quoteAmount,
					"receiver_amount": b.quoteAmount * 5,
				},
			})
		case "/instance/members":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": []map[string]interface{}{{"id": "mb_1", "email": "ops@example.com"}},
			})
		default:
			http.NotFound(w, r)
		}
	}
}

func newTestServer(t *testing.T, stub *backendStub) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := httptest.NewServer(stub.handler())
	t.Cleanup(backend.Close)

	c := &utils.Config{
		ServerPort:         8080,
		SigningKey:         "test-signing-key",
		BlindPayBaseURL:    backend.URL,
		BlindPayAPIKey:     "test-key",
		BlindPayInstanceID: "in_test",
		SessionTTLMinutes:  5,
	}

	l := logging.NewLogger(nil)
	bp := blindpay.NewProvider(c, l)
	p := providers.NewProviderService()
	p.AddProvider(bp)

	s := &Server{
		router:      gin.New(),
		config:      c,
		logger:      l,
		provider:    p,
		blindpay:    bp,
		sessions:    session.NewStore(5 * time.Minute),
		withdrawals: withdraw.NewService(bp, &wallet.RelaySender{}, l),
	}
	TokenController = utils.NewJWTToken(c)

	Widget{}.router(s)
	Schema{}.router(s)
	Instance{}.router(s)

	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %s", rec.Body.String())
	}
	return rec, out
}

func mountSession(t *testing.T, s *Server) string {
	t.Helper()

	token, err := TokenController.CreateToken(utils.TokenObject{
		Email:        "user@example.com",
		SmartAddress: "0x2222222222222222222222222222222222222222",
	})
	if err != nil {
		t.Fatal(err)
	}

	rec, out := doJSON(t, s, http.MethodPost, "/api/v1/widget/sessions", gin.H{"embed_token": token})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session = %d: %s", rec.Code, rec.Body.String())
	}

	data := out["data"].(map[string]interface{})
	return data["session_id"].(string)
}

func TestCreateSessionRequiresValidToken(t *testing.T) {
	s := newTestServer(t, &backendStub{})

	rec, _ := doJSON(t, s, http.MethodPost, "/api/v1/widget/sessions", gin.H{"embed_token": "garbage"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	rec, _ = doJSON(t, s, http.MethodPost, "/api/v1/widget/sessions", gin.H{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSessionMiddlewareRejectsUnknownSession(t *testing.T) {
	s := newTestServer(t, &backendStub{})

	rec, _ := doJSON(t, s, http.MethodGet, "/api/v1/widget/sess_missing/view", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestExistingReceiverFlow(t *testing.T) {
	stub := &backendStub{
		receiver: map[string]interface{}{"id": "re_1", "email": "user@example.com"},
		accounts: []map[string]interface{}{
			{"id": "ba_1", "type": "pix", "name": "Nubank", "pix_key": "ana@example.com"},
		},
	}
	s := newTestServer(t, stub)

	id := mountSession(t, s)

	rec, out := doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/start", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("start = %d: %s", rec.Code, rec.Body.String())
	}

	view := out["data"].(map[string]interface{})
	if view["route"] != "existing" {
		t.Errorf("route = %v, known receiver goes straight to the dashboard", view["route"])
	}

	accounts := view["accounts"].([]interface{})
	if len(accounts) != 1 {
		t.Fatalf("accounts = %v", accounts)
	}
	card := accounts[0].(map[string]interface{})
	if card["currency"] != "BRL" || card["country"] != "Brazil" {
		t.Errorf("card = %v", card)
	}
}

func TestAddAndRemoveBankAccountOverHTTP(t *testing.T) {
	stub := &backendStub{
		receiver: map[string]interface{}{"id": "re_1", "email": "user@example.com"},
		accounts: []map[string]interface{}{
			{"id": "ba_1", "type": "pix", "name": "Nubank", "pix_key": "ana@example.com"},
		},
	}
	s := newTestServer(t, stub)

	id := mountSession(t, s)
	doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/start", nil)

	// Mutations are gated on their modal being raised.
	rec, _ := doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/bank-accounts", gin.H{
		"rail":   "pix",
		"fields": gin.H{"name": "Inter", "pix_key": "ana2@example.com"},
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("add without modal = %d, want 409", rec.Code)
	}

	rec, _ = doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/modal/open", gin.H{"modal": "adding"})
	if rec.Code != http.StatusOK {
		t.Fatalf("open adding modal = %d", rec.Code)
	}

	// Add with a missing required field fails before any mutation.
	rec, out := doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/bank-accounts", gin.H{
		"rail":   "pix",
		"fields": gin.H{"name": "Inter"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("incomplete add = %d", rec.Code)
	}
	if out["message"] != "please fill out Pix Key" {
		t.Errorf("message = %v", out["message"])
	}

	rec, out = doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/bank-accounts", gin.H{
		"rail":   "pix",
		"fields": gin.H{"name": "Inter", "pix_key": "ana2@example.com"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add = %d: %s", rec.Code, rec.Body.String())
	}
	view := out["data"].(map[string]interface{})
	if got := len(view["accounts"].([]interface{})); got != 2 {
		t.Errorf("accounts after add = %d", got)
	}
	if view["modal"] != "none" {
		t.Errorf("modal after add = %v, want closed", view["modal"])
	}

	rec, _ = doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/modal/open", gin.H{"modal": "removing"})
	if rec.Code != http.StatusOK {
		t.Fatalf("open removing modal = %d", rec.Code)
	}

	// Case-insensitive confirmation must not remove.
	rec, _ = doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/bank-accounts/remove", gin.H{
		"typed_name": "nubank",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("mismatched remove = %d, want 409", rec.Code)
	}

	rec, out = doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/bank-accounts/remove", gin.H{
		"typed_name": "Nubank",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("remove = %d: %s", rec.Code, rec.Body.String())
	}
	view = out["data"].(map[string]interface{})
	if got := len(view["accounts"].([]interface{})); got != 1 {
		t.Errorf("accounts after remove = %d", got)
	}
}

func TestQuoteDefaultsAmount(t *testing.T) {
	stub := &backendStub{
		receiver: map[string]interface{}{"id": "re_1", "email": "user@example.com"},
		accounts: []map[string]interface{}{
			{"id": "ba_1", "type": "pix", "name": "Nubank", "pix_key": "ana@example.com"},
		},
	}
	s := newTestServer(t, stub)

	id := mountSession(t, s)
	doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/start", nil)
	rec, _ := doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/bank-accounts/ba_1/detail", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("open detail = %d", rec.Code)
	}

	// No body at all: the quote falls back to the default amount.
	rec, out := doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/withdrawals/quote", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("quote without body = %d: %s", rec.Code, rec.Body.String())
	}
	if stub.quoteAmount != 50000 {
		t.Errorf("request_amount = %v, want 500 in minor units", stub.quoteAmount)
	}

	view := out["data"].(map[string]interface{})
	quote := view["quote"].(map[string]interface{})
	if quote["send_amount"] != "500.00" {
		t.Errorf("send amount = %v", quote["send_amount"])
	}

	// An explicit amount still wins.
	rec, _ = doJSON(t, s, http.MethodPost, "/api/v1/widget/"+id+"/withdrawals/quote", gin.H{"amount": "20.5"})
	if rec.Code != http.StatusOK {
		t.Fatalf("quote with amount = %d", rec.Code)
	}
	if stub.quoteAmount != 2050 {
		t.Errorf("request_amount = %v, want 2050", stub.quoteAmount)
	}
}

func TestInstanceMembersThroughRegistry(t *testing.T) {
	s := newTestServer(t, &backendStub{})

	rec, out := doJSON(t, s, http.MethodGet, "/api/v1/instance/members", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("members = %d: %s", rec.Code, rec.Body.String())
	}

	members := out["data"].([]interface{})
	if len(members) != 1 {
		t.Fatalf("members = %v", members)
	}
	if members[0].(map[string]interface{})["id"] != "mb_1" {
		t.Errorf("member = %v", members[0])
	}
}

func TestSchemaEndpoints(t *testing.T) {
	s := newTestServer(t, &backendStub{})

	rec, out := doJSON(t, s, http.MethodGet, "/api/v1/schema/bank-account/pix", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pix schema = %d", rec.Code)
	}
	fields := out["data"].([]interface{})
	if len(fields) != 2 {
		t.Errorf("pix fields = %v", fields)
	}

	rec, _ = doJSON(t, s, http.MethodGet, "/api/v1/schema/bank-account/swift", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown rail = %d, want 404", rec.Code)
	}

	rec, _ = doJSON(t, s, http.MethodGet, "/api/v1/schema/kyc/light/business", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("light business schema = %d, want 404", rec.Code)
	}

	rec, out = doJSON(t, s, http.MethodGet, "/api/v1/schema/tier?country=MX", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("tier = %d", rec.Code)
	}
	policy := out["data"].(map[string]interface{})
	if policy["tier"] != "light" || policy["entity"] != "individual" {
		t.Errorf("policy = %v", policy)
	}
}
