package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byetax/byetax/internal/demo"
	"github.com/byetax/byetax/internal/testutil"
)

func TestDevLoginAndMe(t *testing.T) {
	_, url := testutil.Backend(t)
	ctx := context.Background()
	c := NewClient(url)

	login, err := c.DevLogin(ctx, "길동")
	require.NoError(t, err)
	assert.Equal(t, "bearer", login.TokenType)

	me, err := c.WithCredential(login.AccessToken).Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "길동", me.Nickname)
}

func TestUnauthorizedMatchesSentinel(t *testing.T) {
	_, url := testutil.Backend(t)
	_, err := NewClient(url, WithToken("bogus")).Me(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Detail)
	assert.Equal(t, apiErr.Detail, Message(err))
}

func TestUploadDetailAndPanels(t *testing.T) {
	s, url := testutil.Backend(t)
	ctx := context.Background()
	c := NewClient(url, WithToken(s.Login("길동")))

	pdf := testutil.WritePDF(t, "종합소득세.pdf")

	up, err := c.Upload(ctx, pdf)
	require.NoError(t, err)
	assert.NotZero(t, up.TaxpayerID)
	assert.Equal(t, "홍길동", up.Data.Taxpayer.Name)

	res, err := c.GetTaxpayer(ctx, up.TaxpayerID)
	require.NoError(t, err)
	assert.Equal(t, "홍길동", res.Taxpayer.Name)
	assert.Equal(t, "종합소득세.pdf", res.Taxpayer.PDFFilename)
	assert.Len(t, res.Businesses, len(up.Data.Businesses))

	calc, err := c.Calculate(ctx, up.TaxpayerID)
	require.NoError(t, err)
	assert.Empty(t, calc.Error)
	assert.NotEmpty(t, calc.Steps)

	ai, err := c.AIAnalysis(ctx, up.TaxpayerID)
	require.NoError(t, err)
	assert.NotEmpty(t, ai.RiskLabel)

	list, err := c.ListTaxpayers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, up.TaxpayerID, list[0].ID)
}

func TestCalculateDomainErrorIsNotTransportError(t *testing.T) {
	s, url := testutil.Backend(t)
	token := s.Login("길동")
	res := demo.SampleAnalysis()
	res.Businesses = nil
	id := s.Seed(s.UserID(token), res)

	calc, err := NewClient(url, WithToken(token)).Calculate(context.Background(), id)
	require.NoError(t, err)
	assert.NotEmpty(t, calc.Error)
}

func TestShareRoundTrip(t *testing.T) {
	s, url := testutil.Backend(t)
	ctx := context.Background()
	token := s.Login("길동")
	id := s.Seed(s.UserID(token), demo.SampleAnalysis())

	st, err := NewClient(url, WithToken(token)).CreateShare(ctx, id)
	require.NoError(t, err)

	shared, err := NewClient(url).GetShared(ctx, st.Token)
	require.NoError(t, err)
	assert.Equal(t, "홍길동", shared.Taxpayer.Name)
	assert.Equal(t, id, shared.Taxpayer.ID)
}

func TestExportFilename(t *testing.T) {
	s, url := testutil.Backend(t)
	token := s.Login("길동")
	id := s.Seed(s.UserID(token), demo.SampleAnalysis())

	exp, err := NewClient(url, WithToken(token)).ExportExcel(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "ByeTax_홍길동_2024.csv", exp.Filename)
	assert.NotEmpty(t, exp.Data)

	dir := filepath.Join(t.TempDir(), "out")
	path, err := exp.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, exp.Filename), path)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, exp.Data, written)
}

func TestFilenameFromDisposition(t *testing.T) {
	assert.Equal(t, "report.xlsx", FilenameFromDisposition(`attachment; filename="report.xlsx"`))
	assert.Equal(t, "세금.xlsx", FilenameFromDisposition(`attachment; filename*=UTF-8''%EC%84%B8%EA%B8%88.xlsx`))
	assert.Equal(t, "evil.xlsx", FilenameFromDisposition(`attachment; filename="../../evil.xlsx"`))
	assert.Equal(t, "", FilenameFromDisposition(`attachment; filename*=UTF-8''..`))
	assert.Equal(t, "", FilenameFromDisposition(`attachment; filename="."`))
	assert.Equal(t, "", FilenameFromDisposition(`attachment; filename="/"`))
	assert.Equal(t, "", FilenameFromDisposition("attachment"))
	assert.Equal(t, "", FilenameFromDisposition(""))
}

func TestExportFallsBackOnUnsafeFilename(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''..")
		_, _ = w.Write([]byte("data"))
	}))
	defer ts.Close()

	exp, err := NewClient(ts.URL, WithToken("t")).ExportExcel(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "byetax_9.xlsx", exp.Filename)
}

func TestForbiddenIsNotUnauthorized(t *testing.T) {
	s, url := testutil.Backend(t)
	owner := s.Login("철수")
	id := s.Seed(s.UserID(owner), demo.SampleAnalysis())

	_, err := NewClient(url, WithToken(s.Login("길동"))).GetTaxpayer(context.Background(), id)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthorized))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "접근 권한이 없습니다.", Message(err))
}

func TestRequestIDSent(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL).ListTaxpayers(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 36)
}

