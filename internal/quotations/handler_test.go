package quotations

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/itbizone/itbizone-api/internal/document"
)

func testRouter(t *testing.T, repo Repository, gen PDFGenerator) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, testService(repo, gen))

	r := chi.NewRouter()
	passGate := func(next http.Handler) http.Handler { return next }
	h.MountRoutes(r, passGate)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateEndpoint(t *testing.T) {
	h := testRouter(t, newMemRepo(), &stubGenerator{})

	rec := doJSON(t, h, http.MethodPost, "/quotation", validRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success         bool   `json:"success"`
		Message         string `json:"message"`
		QuotationID     string `json:"quotationId"`
		QuotationNumber string `json:"quotationNumber"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, "Quotation created successfully", body.Message)
	require.NotEmpty(t, body.QuotationID)
	require.Equal(t, "ITBIZ-QT-1001", body.QuotationNumber)
}

func TestCreateEndpointRejectsMalformedBody(t *testing.T) {
	h := testRouter(t, newMemRepo(), &stubGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/quotation", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"success":false`)
}

func TestCreateEndpointValidation(t *testing.T) {
	repo := newMemRepo()
	h := testRouter(t, repo, &stubGenerator{})

	req := validRequest()
	req.Services = nil
	rec := doJSON(t, h, http.MethodPost, "/quotation", req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "client details and services are required")
	require.Zero(t, repo.count())
}

func TestShowEndpoint(t *testing.T) {
	repo := newMemRepo()
	gen := &stubGenerator{}
	h := testRouter(t, repo, gen)

	svc := testService(repo, gen)
	q, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodGet, "/quotation/"+q.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success   bool      `json:"success"`
		Quotation Quotation `json:"quotation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, q.Number, body.Quotation.Number)
	require.Len(t, body.Quotation.Services, 2)
}

func TestShowEndpointNotFound(t *testing.T) {
	h := testRouter(t, newMemRepo(), &stubGenerator{})

	// a well-formed but unknown id
	rec := doJSON(t, h, http.MethodGet, "/quotation/3e2c1f57-9a76-4f18-9ab7-0a54f2a6f001", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// an id that cannot be a uuid at all
	rec = doJSON(t, h, http.MethodGet, "/quotation/not-a-uuid", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListEndpoint(t *testing.T) {
	repo := newMemRepo()
	gen := &stubGenerator{}
	h := testRouter(t, repo, gen)

	svc := testService(repo, gen)
	for i := 0; i < 2; i++ {
		_, err := svc.Create(context.Background(), validRequest())
		require.NoError(t, err)
	}

	rec := doJSON(t, h, http.MethodGet, "/quotations", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success    bool        `json:"success"`
		Count      int         `json:"count"`
		Quotations []Quotation `json:"quotations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, 2, body.Count)
	require.Equal(t, "ITBIZ-QT-1002", body.Quotations[0].Number)
}

func TestListEndpointEmptyIsArray(t *testing.T) {
	h := testRouter(t, newMemRepo(), &stubGenerator{})

	rec := doJSON(t, h, http.MethodGet, "/quotations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"quotations":[]`)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	repo := newMemRepo()
	gen := &stubGenerator{}
	h := testRouter(t, repo, gen)

	svc := testService(repo, gen)
	q, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodPatch, "/quotation/"+q.ID.String()+"/status", UpdateStatusRequest{Status: StatusAccepted})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Quotation status updated")
	require.Contains(t, rec.Body.String(), `"status":"accepted"`)

	rec = doJSON(t, h, http.MethodPatch, "/quotation/"+q.ID.String()+"/status", UpdateStatusRequest{Status: "archived"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	stored, err := svc.Get(context.Background(), q.ID)
	require.NoError(t, err)
	require.Equal(t, StatusAccepted, stored.Status)
}

func TestDownloadPDFEndpoint(t *testing.T) {
	repo := newMemRepo()
	gen := &stubGenerator{out: []byte("%PDF-stub")}
	h := testRouter(t, repo, gen)

	svc := testService(repo, gen)
	q, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodGet, "/quotation/"+q.ID.String()+"/pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="`+q.Number+`.pdf"`, rec.Header().Get("Content-Disposition"))
	require.Equal(t, []byte("%PDF-stub"), rec.Body.Bytes())
}

func TestDownloadPDFEndpointNotFound(t *testing.T) {
	h := testRouter(t, newMemRepo(), &stubGenerator{})

	rec := doJSON(t, h, http.MethodGet, "/quotation/3e2c1f57-9a76-4f18-9ab7-0a54f2a6f001/pdf", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestDownloadPDFConcurrentRequests(t *testing.T) {
	repo := newMemRepo()
	gen := &stubGenerator{out: []byte("%PDF-stub")}
	h := testRouter(t, repo, gen)

	svc := testService(repo, gen)
	q, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/quotation/"+q.ID.String()+"/pdf", nil)
			h.ServeHTTP(rec, req)
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()
	for _, code := range codes {
		require.Equal(t, http.StatusOK, code)
	}
}

// gatedGenerator blocks every render until release is closed, so a test can
// line up waiters on an in-flight render.
type gatedGenerator struct {
	started chan struct{}
	release chan struct{}
	out     []byte
}

func (g *gatedGenerator) Generate(ctx context.Context, d document.Data) ([]byte, string, error) {
	select {
	case g.started <- struct{}{}:
	default:
	}
	<-g.release
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return g.out, d.FileName(), nil
}

func TestDownloadPDFSurvivesLeaderDisconnect(t *testing.T) {
	repo := newMemRepo()
	gen := &gatedGenerator{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		out:     []byte("%PDF-stub"),
	}
	h := testRouter(t, repo, gen)

	svc := testService(repo, gen)
	q, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	path := "/quotation/" + q.ID.String() + "/pdf"

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderDone := make(chan struct{})
	go func() {
		defer close(leaderDone)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(leaderCtx)
		h.ServeHTTP(rec, req)
	}()

	// The first request is mid-render; drop its connection.
	<-gen.started
	cancelLeader()

	followerRec := httptest.NewRecorder()
	followerDone := make(chan struct{})
	go func() {
		defer close(followerDone)
		req := httptest.NewRequest(http.MethodGet, path, nil)
		h.ServeHTTP(followerRec, req)
	}()

	close(gen.release)
	<-followerDone
	<-leaderDone

	require.Equal(t, http.StatusOK, followerRec.Code)
	require.Equal(t, []byte("%PDF-stub"), followerRec.Body.Bytes())
}

func TestAdminGateAppliesToListing(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, testService(newMemRepo(), &stubGenerator{}))

	denyAll := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	r := chi.NewRouter()
	h.MountRoutes(r, denyAll)

	rec := doJSON(t, r, http.MethodGet, "/quotations", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSON(t, r, http.MethodPatch, "/quotation/3e2c1f57-9a76-4f18-9ab7-0a54f2a6f001/status", UpdateStatusRequest{Status: StatusSent})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// public surface is unaffected
	rec = doJSON(t, r, http.MethodPost, "/quotation", validRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
}
