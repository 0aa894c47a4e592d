package demo

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byetax/byetax/internal/tax"
)

func newTestServer() (*Server, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	s := NewServer(nil)
	return s, s.Router()
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequiresAuth(t *testing.T) {
	_, r := newTestServer()
	w := serve(r, http.MethodGet, "/taxpayers", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestRequestIDEchoed(t *testing.T) {
	_, r := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/auth/dev-login", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestUploadThenDetailIsFlat(t *testing.T) {
	s, r := newTestServer()
	token := s.Login("길동")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "guide.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var up tax.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &up))
	assert.Equal(t, "success", up.Status)
	assert.Equal(t, "홍길동", up.Data.Taxpayer.Name)

	w = serve(r, http.MethodGet, "/taxpayers/1", token)
	require.Equal(t, http.StatusOK, w.Code)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, "홍길동", raw["name"])
	assert.NotContains(t, raw, "taxpayer")
}

func TestUploadRejectsNonPDF(t *testing.T) {
	s, r := newTestServer()
	token := s.Login("길동")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "notes.txt")
	_, _ = part.Write([]byte("hi"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOwnership(t *testing.T) {
	s, r := newTestServer()
	alice := s.Login("alice")
	bob := s.Login("bob")
	id := s.Seed(s.UserID(alice), SampleAnalysis())

	w := serve(r, http.MethodGet, "/taxpayers/"+itoa(id), bob)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, http.MethodGet, "/taxpayers/999", alice)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShareExpiry(t *testing.T) {
	s, r := newTestServer()
	token := s.Login("길동")
	id := s.Seed(s.UserID(token), SampleAnalysis())

	w := serve(r, http.MethodPost, "/taxpayers/"+itoa(id)+"/share", token)
	require.Equal(t, http.StatusOK, w.Code)
	var st tax.ShareToken
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Len(t, st.Token, 16)

	w = serve(r, http.MethodGet, "/share/"+st.Token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	s.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	w = serve(r, http.MethodGet, "/share/"+st.Token, "")
	assert.Equal(t, http.StatusGone, w.Code)

	w = serve(r, http.MethodGet, "/share/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalculateSampleIsRefund(t *testing.T) {
	res := SampleAnalysis()
	calc := Calculate(1, &res)

	require.Len(t, calc.Steps, 12)
	assert.Equal(t, float64(6), calc.TaxRate)
	assert.True(t, calc.Steps[5].IsRateMarker())
	assert.True(t, calc.Steps[11].Final)
	assert.Less(t, calc.FinalTax, int64(0))
	assert.Equal(t, calc.FinalTax, *calc.Steps[11].Value)
}

func TestAnalyzeSample(t *testing.T) {
	res := SampleAnalysis()
	ai := Analyze(1, &res)

	assert.Equal(t, tax.RiskLow, ai.RiskLevel)
	assert.NotEmpty(t, ai.Comments)
	assert.Equal(t, "success", ai.Comments[0].Type)
}

func TestAnalyzeNegativeIncomeIsHighRisk(t *testing.T) {
	res := SampleAnalysis()
	res.IncomeRateHistory = []tax.IncomeRate{{AttributionYear: yr(2023), IncomeRate: f64(-12)}}
	ai := Analyze(1, &res)
	assert.Equal(t, tax.RiskHigh, ai.RiskLevel)
	assert.Equal(t, "danger", ai.Comments[0].Type)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
