package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneybook/internal/cache"
	"moneybook/internal/core"
)

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, 5*time.Second, opts...)
	require.NoError(t, err)
	return c
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("localhost:8080", time.Second)
	assert.Error(t, err)
	_, err = New("/api", time.Second)
	assert.Error(t, err)
}

func TestListTransactionsSendsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /transactions", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		io.WriteString(w, `[
			{"id":"t1","type":"INCOME","category":"Salary","amount":1000.50,"transactionDate":"2024-03-01","userId":"u"},
			{"id":"t2","type":"LOAN_GIVEN","category":"Friends","amount":"200","counterparty":"Bob","transactionDate":"2024-03-02"}
		]`)
	})

	c := newTestClient(t, mux, WithTokenSource(TokenFunc(func() string { return "tok" })))
	txs, err := c.ListTransactions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	require.Len(t, txs, 2)
	assert.Equal(t, "t1", txs[0].ID)
	assert.True(t, decimal.RequireFromString("1000.5").Equal(txs[0].Amount))
	assert.Equal(t, core.LoanGiven, txs[1].Type)
	assert.Equal(t, "Bob", txs[1].Counterparty)
	assert.Equal(t, "2024-03-02", txs[1].Date.String())
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var present bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		io.WriteString(w, `[]`)
	}))
	_, err := c.ListTypes(context.Background())
	require.NoError(t, err)
	assert.False(t, present)
}

func TestGetSummaryDecoding(t *testing.T) {
	tests := []struct {
		name                  string
		body                  string
		balance, taken, given string // "" means absent
	}{
		{"short names", `{"balance":10,"loanTaken":2,"loanGiven":3}`, "10", "2", "3"},
		{"total names", `{"balance":10,"totalLoanTaken":4,"totalLoanGiven":5}`, "10", "4", "5"},
		{"short name wins", `{"loanTaken":1,"totalLoanTaken":9}`, "", "1", ""},
		{"nulls are absent", `{"balance":null,"loanTaken":null}`, "", "", ""},
		{"null body", `null`, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/transactions/summary", r.URL.Path)
				io.WriteString(w, tt.body)
			}))
			s, err := c.GetSummary(context.Background())
			require.NoError(t, err)
			require.NotNil(t, s)
			assertOptional(t, tt.balance, s.Balance)
			assertOptional(t, tt.taken, s.LoanTaken)
			assertOptional(t, tt.given, s.LoanGiven)
		})
	}
}

func assertOptional(t *testing.T, want string, got *decimal.Decimal) {
	t.Helper()
	if want == "" {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString(want).Equal(*got), "want %s got %s", want, got)
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		status   int
		body     string
		sentinel error
		message  string
	}{
		{http.StatusUnauthorized, `{"message":"token expired"}`, ErrUnauthorized, "token expired"},
		{http.StatusForbidden, ``, ErrUnauthorized, ""},
		{http.StatusNotFound, `{"error":"Transaction not found"}`, ErrNotFound, "Transaction not found"},
		{http.StatusBadRequest, `Counterparty is required`, nil, "Counterparty is required"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			_, err := c.GetTransaction(context.Background(), "abc")
			require.Error(t, err)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.message, se.Message)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			} else {
				assert.NotErrorIs(t, err, ErrUnauthorized)
				assert.NotErrorIs(t, err, ErrNotFound)
			}
		})
	}
}

func TestAddAndUpdateTransaction(t *testing.T) {
	var posted, put map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		io.WriteString(w, `{"id":"new","type":"EXPENSE","category":"Food","amount":12.5,"transactionDate":"2024-05-01"}`)
	})
	mux.HandleFunc("PUT /transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "new", r.PathValue("id"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&put))
		io.WriteString(w, `{"id":"new","type":"EXPENSE","category":"Groceries","amount":13,"transactionDate":"2024-05-01"}`)
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	tx := core.Transaction{
		Type:     core.Expense,
		Category: "Food",
		Amount:   decimal.RequireFromString("12.50"),
		Date:     core.NewDate(2024, 5, 1),
	}
	created, err := c.AddTransaction(ctx, tx)
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	assert.Equal(t, "EXPENSE", posted["type"])
	assert.Equal(t, 12.5, posted["amount"])
	assert.Equal(t, "2024-05-01", posted["transactionDate"])
	assert.NotContains(t, posted, "id")
	assert.NotContains(t, posted, "counterparty")

	tx.Category = "Groceries"
	updated, err := c.UpdateTransaction(ctx, "new", tx)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Category)
	assert.Equal(t, "Groceries", put["category"])

	_, err = c.UpdateTransaction(ctx, "", tx)
	assert.Error(t, err)
}

func TestCacheServesReadsAndWritesPurge(t *testing.T) {
	var listCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /transactions", func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		io.WriteString(w, `[]`)
	})
	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"x","type":"INCOME","category":"c","amount":1,"transactionDate":"2024-01-01"}`)
	})
	c := newTestClient(t, mux, WithCache(cache.NewLRUCache[[]byte](8, time.Minute)))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.ListTransactions(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), listCalls.Load())

	_, err := c.AddTransaction(ctx, core.Transaction{Type: core.Income, Category: "c", Amount: decimal.NewFromInt(1), Date: core.NewDate(2024, 1, 1)})
	require.NoError(t, err)

	_, err = c.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), listCalls.Load())
}

func TestFailedReadIsNotCached(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, `["INCOME"]`)
	}), WithCache(cache.NewLRUCache[[]byte](8, time.Minute)))

	_, err := c.ListTypes(context.Background())
	require.Error(t, err)
	types, err := c.ListTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.TransactionType{core.Income}, types)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{"token", `{"token":"a"}`, "a", nil},
		{"accessToken", `{"accessToken":"b"}`, "b", nil},
		{"jwt", `{"jwt":"c"}`, "c", nil},
		{"nested data", `{"data":{"token":"d"}}`, "d", nil},
		{"first key wins", `{"jwt":"c","token":"a"}`, "a", nil},
		{"no token", `{"user":"x"}`, "", ErrMissingToken},
		{"empty body", ``, "", ErrMissingToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var creds Credentials
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/login", r.URL.Path)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
				io.WriteString(w, tt.body)
			}))
			tok, err := c.Login(context.Background(), "  Ada@Example.COM ", "pw")
			assert.Equal(t, "ada@example.com", creds.Email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tok)
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	_, err := c.Login(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Login(context.Background(), "", "pw")
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	var got Registration
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	err := c.Register(context.Background(), Registration{FirstName: "Ada", LastName: "L", Email: "ADA@x.io", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "ada@x.io", got.Email)
	assert.Equal(t, "Ada", got.FirstName)
}
